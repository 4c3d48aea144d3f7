package model

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"

	"github.com/lk2023060901/rentit-go/internal/json"
	"github.com/lk2023060901/rentit-go/internal/jsonfmt"
	"github.com/lk2023060901/rentit-go/pkg/util/merr"
)

type ModelSuite struct {
	suite.Suite

	s *jsonfmt.Serializer
}

func (s *ModelSuite) SetupSuite() {
	var err error
	s.s, err = jsonfmt.NewSerializer(NewRegistry())
	s.Require().NoError(err)
}

func (s *ModelSuite) TestRegistry() {
	reg := NewRegistry()
	s.Equal(9, reg.Len())
	names := lo.Map(reg.Types(), func(desc jsonfmt.TypeDesc, _ int) string {
		return desc.Name()
	})
	s.Equal([]string{"Token", "Account", "Product", "Price", "Rating", "Meta", "Credits", "Purchase", "Id"}, names)
}

func (s *ModelSuite) TestPrice() {
	out, err := s.s.Encode(&Price{Buy: lo.ToPtr[uint32](1000)})
	s.NoError(err)
	s.Equal(`{"buy":1000}`, out)
}

func (s *ModelSuite) TestProduct() {
	product := &Product{Title: `Foo "Bar"`}
	out, err := s.s.Encode(product)
	s.NoError(err)
	s.Equal(`{"title":"Foo \"Bar\""}`, out)

	product.Description = lo.ToPtr("x")
	out, err = s.s.EncodeProjected(product, jsonfmt.Keep("title"))
	s.NoError(err)
	s.Equal(`{"title":"Foo \"Bar\""}`, out)
	s.Equal("x", *product.Description)
}

func (s *ModelSuite) TestFullProduct() {
	product := &Product{
		Title:       "Big Buck Bunny",
		Description: lo.ToPtr("short film"),
		Type:        lo.ToPtr("film"),
		Owner:       lo.ToPtr("blender"),
		Price:       &Price{Buy: lo.ToPtr[uint32](100), Rent: lo.ToPtr[uint32](10)},
		Rating:      &Rating{Score: lo.ToPtr[int32](-2), Count: lo.ToPtr[uint32](5)},
		Meta:        &Meta{Key: "duration", Value: lo.ToPtr("10m")},
		Published:   lo.ToPtr(true),
	}
	out, err := s.s.Encode(product)
	s.NoError(err)
	s.Equal(`{"title":"Big Buck Bunny","description":"short film","type":"film","owner":"blender",`+
		`"price":{"buy":100,"rent":10},"rating":{"score":-2,"count":5},"meta":{"key":"duration","value":"10m"},"published":true}`, out)

	var decoded map[string]any
	s.NoError(json.UnmarshalFromString(out, &decoded))
	s.Len(decoded, 8)
}

func (s *ModelSuite) TestAccountHidesPassword() {
	account := &Account{
		User:     "alice",
		Email:    lo.ToPtr("alice@example.com"),
		Password: lo.ToPtr("secret"),
		Credits:  lo.ToPtr[uint32](20),
	}
	out, err := s.s.EncodeProjected(account, jsonfmt.Keep("user", "email", "credits"))
	s.NoError(err)
	s.Equal(`{"user":"alice","email":"alice@example.com","credits":20}`, out)
	s.NotContains(out, "secret")
}

func (s *ModelSuite) TestSmallRecords() {
	cases := []struct {
		rec      jsonfmt.Record
		expected string
	}{
		{&Token{Token: "abc", Expires: lo.ToPtr("2026-01-01T00:00:00Z")}, `{"token":"abc","expires":"2026-01-01T00:00:00Z"}`},
		{&Credits{Credits: lo.ToPtr[uint32](0)}, `{"credits":0}`},
		{&Credits{}, `{}`},
		{&Purchase{Product: lo.ToPtr[uint32](7), Type: lo.ToPtr("R")}, `{"product":7,"type":"R"}`},
		{&Id{Id: 42}, `{"id":42}`},
		{&Rating{Score: lo.ToPtr[int32](3)}, `{"score":3}`},
	}
	for _, c := range cases {
		out, err := s.s.Encode(c.rec)
		s.NoError(err)
		s.Equal(c.expected, out)
	}
}

func (s *ModelSuite) TestArray() {
	out, err := jsonfmt.EncodeArrayProjected(s.s, []*Product{
		{Title: "a", Type: lo.ToPtr("music")},
		{Title: "b"},
	}, jsonfmt.Keep("title"))
	s.NoError(err)
	s.Equal(`[{"title":"a"},{"title":"b"}]`, out)
}

func (s *ModelSuite) TestProductFromEntry() {
	product, err := ProductFromEntry(Entry{
		Name:        "Song",
		CreateDate:  time.Date(2013, 11, 20, 0, 0, 0, 0, time.UTC),
		ProductType: "music",
		Owner:       "bob",
		BuyPrice:    lo.ToPtr(25),
	})
	s.Require().NoError(err)

	out, err := s.s.Encode(product)
	s.NoError(err)
	s.Equal(`{"title":"Song","type":"music","owner":"bob","price":{"buy":25,"rent":0}}`, out)

	_, err = ProductFromEntry(Entry{Name: "Bad", RentPrice: lo.ToPtr(-1)})
	s.ErrorIs(err, merr.ErrParameterInvalid)

	products, err := ProductsFromEntries([]Entry{{Name: "a"}, {Name: "b", Description: lo.ToPtr("d")}})
	s.NoError(err)
	out, err = jsonfmt.EncodeArray(s.s, products)
	s.NoError(err)
	s.Equal(`[{"title":"a","type":"","owner":"","price":{"buy":0,"rent":0}},`+
		`{"title":"b","description":"d","type":"","owner":"","price":{"buy":0,"rent":0}}]`, out)

	_, err = ProductsFromEntries([]Entry{{Name: "a"}, {Name: "b", BuyPrice: lo.ToPtr(-5)}})
	s.ErrorIs(err, merr.ErrParameterInvalid)
}

func (s *ModelSuite) TestClone() {
	product := &Product{
		Title:       "t",
		Description: lo.ToPtr("d"),
		Price:       &Price{Buy: lo.ToPtr[uint32](1)},
		Rating:      &Rating{Count: lo.ToPtr[uint32](1)},
	}
	cloned := product.Clone()
	s.Equal(product, cloned)

	*cloned.Price.Buy = 2
	*cloned.Description = "changed"
	s.Equal(uint32(1), *product.Price.Buy)
	s.Equal("d", *product.Description)

	s.Nil((*Product)(nil).Clone())
	s.Nil((*Price)(nil).Clone())

	account := &Account{User: "u", Credits: lo.ToPtr[uint32](3)}
	s.Equal(account, account.Clone())
	s.Equal(&Token{Token: "t"}, (&Token{Token: "t"}).Clone())
	s.Equal(&Meta{Key: "k"}, (&Meta{Key: "k"}).Clone())
	s.Equal(&Credits{}, (&Credits{}).Clone())
	s.Equal(&Purchase{Type: lo.ToPtr("B")}, (&Purchase{Type: lo.ToPtr("B")}).Clone())
	s.Equal(&Id{Id: 1}, (&Id{Id: 1}).Clone())
}

func TestModel(t *testing.T) {
	suite.Run(t, new(ModelSuite))
}
