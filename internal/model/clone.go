package model

import "github.com/samber/lo"

// 序列化不会修改记录；需要私有副本（例如在副本上改价后再输出）时使用 Clone。

func (t *Token) Clone() *Token {
	if t == nil {
		return nil
	}
	return &Token{Token: t.Token, Expires: cloneOpt(t.Expires)}
}

func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	return &Account{
		User:     a.User,
		Email:    cloneOpt(a.Email),
		Password: cloneOpt(a.Password),
		Name:     cloneOpt(a.Name),
		Address:  cloneOpt(a.Address),
		Birth:    cloneOpt(a.Birth),
		About:    cloneOpt(a.About),
		Credits:  cloneOpt(a.Credits),
		Type:     cloneOpt(a.Type),
	}
}

func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	return &Product{
		Title:       p.Title,
		Description: cloneOpt(p.Description),
		Type:        cloneOpt(p.Type),
		Owner:       cloneOpt(p.Owner),
		Price:       p.Price.Clone(),
		Rating:      p.Rating.Clone(),
		Meta:        p.Meta.Clone(),
		Published:   cloneOpt(p.Published),
	}
}

func (p *Price) Clone() *Price {
	if p == nil {
		return nil
	}
	return &Price{Buy: cloneOpt(p.Buy), Rent: cloneOpt(p.Rent)}
}

func (r *Rating) Clone() *Rating {
	if r == nil {
		return nil
	}
	return &Rating{Score: cloneOpt(r.Score), Count: cloneOpt(r.Count)}
}

func (m *Meta) Clone() *Meta {
	if m == nil {
		return nil
	}
	return &Meta{Key: m.Key, Value: cloneOpt(m.Value)}
}

func (c *Credits) Clone() *Credits {
	if c == nil {
		return nil
	}
	return &Credits{Credits: cloneOpt(c.Credits)}
}

func (p *Purchase) Clone() *Purchase {
	if p == nil {
		return nil
	}
	return &Purchase{
		Product:   cloneOpt(p.Product),
		Purchased: cloneOpt(p.Purchased),
		Type:      cloneOpt(p.Type),
		Expires:   cloneOpt(p.Expires),
	}
}

func (i *Id) Clone() *Id {
	if i == nil {
		return nil
	}
	return &Id{Id: i.Id}
}

func cloneOpt[T any](p *T) *T {
	if p == nil {
		return nil
	}
	return lo.ToPtr(*p)
}
