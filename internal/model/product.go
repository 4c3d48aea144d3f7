package model

import (
	"math"
	"time"

	"github.com/samber/lo"

	"github.com/lk2023060901/rentit-go/pkg/util/merr"
)

// Entry 是持久化层返回的商品条目。价格为 nil 表示未设置。
type Entry struct {
	Name        string
	CreateDate  time.Time
	ProductType string
	Owner       string
	Description *string
	RentPrice   *int
	BuyPrice    *int
}

// ProductFromEntry 将持久化条目转换为对外输出的 Product。
// 未设置的价格输出为 0；价格为负数时返回 merr.ErrParameterInvalid。
func ProductFromEntry(entry Entry) (*Product, error) {
	buy, err := priceOf("buyPrice", entry.BuyPrice)
	if err != nil {
		return nil, err
	}
	rent, err := priceOf("rentPrice", entry.RentPrice)
	if err != nil {
		return nil, err
	}

	return &Product{
		Title:       entry.Name,
		Description: cloneOpt(entry.Description),
		Type:        lo.ToPtr(entry.ProductType),
		Owner:       lo.ToPtr(entry.Owner),
		Price: &Price{
			Buy:  lo.ToPtr(buy),
			Rent: lo.ToPtr(rent),
		},
	}, nil
}

// ProductsFromEntries 批量转换，任一条目非法时整体失败。
func ProductsFromEntries(entries []Entry) ([]*Product, error) {
	products := make([]*Product, 0, len(entries))
	for _, entry := range entries {
		product, err := ProductFromEntry(entry)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

func priceOf(name string, price *int) (uint32, error) {
	if price == nil {
		return 0, nil
	}
	if *price < 0 || int64(*price) > math.MaxUint32 {
		return 0, merr.WrapErrParameterInvalidRange(0, int64(math.MaxUint32), int64(*price), name)
	}
	return uint32(*price), nil
}
