package model

import (
	"github.com/lk2023060901/rentit-go/internal/jsonfmt"
)

// NewRegistry 返回恰好包含 RentIt 全部对外记录类型的注册表。
func NewRegistry() *jsonfmt.Registry {
	return jsonfmt.MustNewRegistry(
		jsonfmt.TypeOf[*Token](),
		jsonfmt.TypeOf[*Account](),
		jsonfmt.TypeOf[*Product](),
		jsonfmt.TypeOf[*Price](),
		jsonfmt.TypeOf[*Rating](),
		jsonfmt.TypeOf[*Meta](),
		jsonfmt.TypeOf[*Credits](),
		jsonfmt.TypeOf[*Purchase](),
		jsonfmt.TypeOf[*Id](),
	)
}
