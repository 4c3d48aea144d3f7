package jsonfmt

type testPrice struct {
	Buy  *uint32
	Rent *uint32
}

func (p *testPrice) TypeName() string { return "Price" }

func (p *testPrice) Fields() []Field {
	return []Field{
		FieldOf("buy", func() Value { return OptUint(p.Buy) }),
		FieldOf("rent", func() Value { return OptUint(p.Rent) }),
	}
}

type testProduct struct {
	Title       string
	Description *string
	Price       *testPrice
}

func (p *testProduct) TypeName() string { return "Product" }

func (p *testProduct) Fields() []Field {
	return []Field{
		FieldOf("title", func() Value { return String(p.Title) }),
		FieldOf("description", func() Value { return OptString(p.Description) }),
		FieldOf("price", func() Value { return Nested(p.Price) }),
	}
}

type testScalars struct {
	S string
	U uint64
	I int64
	B bool
}

func (s testScalars) TypeName() string { return "Scalars" }

func (s testScalars) Fields() []Field {
	return []Field{
		FieldOf("s", func() Value { return String(s.S) }),
		FieldOf("u", func() Value { return Uint(s.U) }),
		FieldOf("i", func() Value { return Int(s.I) }),
		FieldOf("b", func() Value { return Bool(s.B) }),
	}
}

type testNode struct {
	Name string
	Next *testNode
}

func (n *testNode) TypeName() string { return "Node" }

func (n *testNode) Fields() []Field {
	return []Field{
		FieldOf("name", func() Value { return String(n.Name) }),
		FieldOf("next", func() Value { return Nested(n.Next) }),
	}
}

type testPair struct {
	Left  *testNode
	Right *testNode
}

func (p *testPair) TypeName() string { return "Pair" }

func (p *testPair) Fields() []Field {
	return []Field{
		FieldOf("left", func() Value { return Nested(p.Left) }),
		FieldOf("right", func() Value { return Nested(p.Right) }),
	}
}

type testSecret struct {
	Key string
}

func (s *testSecret) TypeName() string { return "Secret" }

func (s *testSecret) Fields() []Field {
	return []Field{
		FieldOf("key", func() Value { return String(s.Key) }),
	}
}

type testBroken struct{}

func (b *testBroken) TypeName() string { return "Broken" }

func (b *testBroken) Fields() []Field {
	return []Field{
		FieldOf("ok", func() Value { return Bool(true) }),
		FieldOf("boom", func() Value { panic("storage offline") }),
	}
}

// anotherPrice 与 testPrice 同名，用于测试注册冲突。
type anotherPrice struct{}

func (p *anotherPrice) TypeName() string { return "Price" }
func (p *anotherPrice) Fields() []Field { return nil }

func newTestRegistry() *Registry {
	return MustNewRegistry(
		TypeOf[*testPrice](),
		TypeOf[*testProduct](),
		TypeOf[testScalars](),
		TypeOf[*testNode](),
		TypeOf[*testPair](),
		TypeOf[*testBroken](),
	)
}

func ptr[T any](v T) *T {
	return &v
}
