// Package model 定义 RentIt 对外输出的记录类型。
package model

import (
	"github.com/lk2023060901/rentit-go/internal/jsonfmt"
)

// Token 是登录成功后下发的访问令牌。
type Token struct {
	Token   string
	Expires *string
}

func (t *Token) TypeName() string { return "Token" }

func (t *Token) Fields() []jsonfmt.Field {
	return []jsonfmt.Field{
		jsonfmt.FieldOf("token", func() jsonfmt.Value { return jsonfmt.String(t.Token) }),
		jsonfmt.FieldOf("expires", func() jsonfmt.Value { return jsonfmt.OptString(t.Expires) }),
	}
}

// Account 是用户账户信息。Password 只在创建/更新时由客户端提交，输出前应通过投影去掉。
type Account struct {
	User     string
	Email    *string
	Password *string
	Name     *string
	Address  *string
	Birth    *string
	About    *string
	Credits  *uint32
	Type     *string
}

func (a *Account) TypeName() string { return "Account" }

func (a *Account) Fields() []jsonfmt.Field {
	return []jsonfmt.Field{
		jsonfmt.FieldOf("user", func() jsonfmt.Value { return jsonfmt.String(a.User) }),
		jsonfmt.FieldOf("email", func() jsonfmt.Value { return jsonfmt.OptString(a.Email) }),
		jsonfmt.FieldOf("password", func() jsonfmt.Value { return jsonfmt.OptString(a.Password) }),
		jsonfmt.FieldOf("name", func() jsonfmt.Value { return jsonfmt.OptString(a.Name) }),
		jsonfmt.FieldOf("address", func() jsonfmt.Value { return jsonfmt.OptString(a.Address) }),
		jsonfmt.FieldOf("birth", func() jsonfmt.Value { return jsonfmt.OptString(a.Birth) }),
		jsonfmt.FieldOf("about", func() jsonfmt.Value { return jsonfmt.OptString(a.About) }),
		jsonfmt.FieldOf("credits", func() jsonfmt.Value { return jsonfmt.OptUint(a.Credits) }),
		jsonfmt.FieldOf("type", func() jsonfmt.Value { return jsonfmt.OptString(a.Type) }),
	}
}

// Product 是商品（可购买或租借的媒体）。
type Product struct {
	Title       string
	Description *string
	Type        *string
	Owner       *string
	Price       *Price
	Rating      *Rating
	Meta        *Meta
	Published   *bool
}

func (p *Product) TypeName() string { return "Product" }

func (p *Product) Fields() []jsonfmt.Field {
	return []jsonfmt.Field{
		jsonfmt.FieldOf("title", func() jsonfmt.Value { return jsonfmt.String(p.Title) }),
		jsonfmt.FieldOf("description", func() jsonfmt.Value { return jsonfmt.OptString(p.Description) }),
		jsonfmt.FieldOf("type", func() jsonfmt.Value { return jsonfmt.OptString(p.Type) }),
		jsonfmt.FieldOf("owner", func() jsonfmt.Value { return jsonfmt.OptString(p.Owner) }),
		jsonfmt.FieldOf("price", func() jsonfmt.Value { return jsonfmt.Nested(p.Price) }),
		jsonfmt.FieldOf("rating", func() jsonfmt.Value { return jsonfmt.Nested(p.Rating) }),
		jsonfmt.FieldOf("meta", func() jsonfmt.Value { return jsonfmt.Nested(p.Meta) }),
		jsonfmt.FieldOf("published", func() jsonfmt.Value { return jsonfmt.OptBool(p.Published) }),
	}
}

// Price 是商品价格，单位为积分。
type Price struct {
	Buy  *uint32
	Rent *uint32
}

func (p *Price) TypeName() string { return "Price" }

func (p *Price) Fields() []jsonfmt.Field {
	return []jsonfmt.Field{
		jsonfmt.FieldOf("buy", func() jsonfmt.Value { return jsonfmt.OptUint(p.Buy) }),
		jsonfmt.FieldOf("rent", func() jsonfmt.Value { return jsonfmt.OptUint(p.Rent) }),
	}
}

// Rating 是商品评分。Score 为平均分，可以为负（差评多于好评）。
type Rating struct {
	Score *int32
	Count *uint32
}

func (r *Rating) TypeName() string { return "Rating" }

func (r *Rating) Fields() []jsonfmt.Field {
	return []jsonfmt.Field{
		jsonfmt.FieldOf("score", func() jsonfmt.Value { return jsonfmt.OptInt(r.Score) }),
		jsonfmt.FieldOf("count", func() jsonfmt.Value { return jsonfmt.OptUint(r.Count) }),
	}
}

// Meta 是附加在商品上的一条元数据。
type Meta struct {
	Key   string
	Value *string
}

func (m *Meta) TypeName() string { return "Meta" }

func (m *Meta) Fields() []jsonfmt.Field {
	return []jsonfmt.Field{
		jsonfmt.FieldOf("key", func() jsonfmt.Value { return jsonfmt.String(m.Key) }),
		jsonfmt.FieldOf("value", func() jsonfmt.Value { return jsonfmt.OptString(m.Value) }),
	}
}

// Credits 是账户积分余额或充值数额。
type Credits struct {
	Credits *uint32
}

func (c *Credits) TypeName() string { return "Credits" }

func (c *Credits) Fields() []jsonfmt.Field {
	return []jsonfmt.Field{
		jsonfmt.FieldOf("credits", func() jsonfmt.Value { return jsonfmt.OptUint(c.Credits) }),
	}
}

// Purchase 是一次购买或租借记录。
type Purchase struct {
	Product   *uint32
	Purchased *string
	Type      *string
	Expires   *string
}

func (p *Purchase) TypeName() string { return "Purchase" }

func (p *Purchase) Fields() []jsonfmt.Field {
	return []jsonfmt.Field{
		jsonfmt.FieldOf("product", func() jsonfmt.Value { return jsonfmt.OptUint(p.Product) }),
		jsonfmt.FieldOf("purchased", func() jsonfmt.Value { return jsonfmt.OptString(p.Purchased) }),
		jsonfmt.FieldOf("type", func() jsonfmt.Value { return jsonfmt.OptString(p.Type) }),
		jsonfmt.FieldOf("expires", func() jsonfmt.Value { return jsonfmt.OptString(p.Expires) }),
	}
}

// Id 用于在创建资源后返回其编号。
type Id struct {
	Id uint32
}

func (i *Id) TypeName() string { return "Id" }

func (i *Id) Fields() []jsonfmt.Field {
	return []jsonfmt.Field{
		jsonfmt.FieldOf("id", func() jsonfmt.Value { return jsonfmt.Uint(i.Id) }),
	}
}
