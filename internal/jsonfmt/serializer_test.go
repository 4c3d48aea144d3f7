package jsonfmt

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/lk2023060901/rentit-go/internal/json"
	"github.com/lk2023060901/rentit-go/pkg/metrics"
	"github.com/lk2023060901/rentit-go/pkg/util/merr"
)

type SerializerSuite struct {
	suite.Suite

	s *Serializer
}

func (s *SerializerSuite) SetupTest() {
	var err error
	s.s, err = NewSerializer(newTestRegistry())
	s.Require().NoError(err)
}

func (s *SerializerSuite) TestPrice() {
	out, err := s.s.Encode(&testPrice{Buy: ptr[uint32](1000)})
	s.NoError(err)
	s.Equal(`{"buy":1000}`, out)
}

func (s *SerializerSuite) TestProduct() {
	out, err := s.s.Encode(&testProduct{Title: `Foo "Bar"`})
	s.NoError(err)
	s.Equal(`{"title":"Foo \"Bar\""}`, out)
}

func (s *SerializerSuite) TestNested() {
	p := &testProduct{
		Title:       "t",
		Description: ptr("d"),
		Price:       &testPrice{Buy: ptr[uint32](1), Rent: ptr[uint32](0)},
	}
	out, err := s.s.Encode(p)
	s.NoError(err)
	s.Equal(`{"title":"t","description":"d","price":{"buy":1,"rent":0}}`, out)
}

func (s *SerializerSuite) TestScalarKinds() {
	out, err := s.s.Encode(testScalars{S: "a", U: 18446744073709551615, I: -42, B: false})
	s.NoError(err)
	s.Equal(`{"s":"a","u":18446744073709551615,"i":-42,"b":false}`, out)

	out, err = s.s.Encode(testScalars{I: 7, B: true})
	s.NoError(err)
	s.Equal(`{"s":"","u":0,"i":7,"b":true}`, out)
}

func (s *SerializerSuite) TestDeterminism() {
	p := &testProduct{Title: "t", Description: ptr("x\ny"), Price: &testPrice{Rent: ptr[uint32](5)}}
	first, err := s.s.Encode(p)
	s.NoError(err)
	second, err := s.s.Encode(p)
	s.NoError(err)
	s.Equal(first, second)
}

func (s *SerializerSuite) TestNullOmission() {
	out, err := s.s.Encode(&testPrice{})
	s.NoError(err)
	s.Equal(`{}`, out)

	out, err = s.s.Encode(&testPrice{Rent: ptr[uint32](3)})
	s.NoError(err)
	s.Equal(`{"rent":3}`, out)
	s.NotContains(out, "buy")
	s.NotContains(out, "null")
}

func (s *SerializerSuite) TestFieldOrder() {
	out, err := s.s.Encode(&testProduct{Title: "t", Price: &testPrice{Buy: ptr[uint32](2)}})
	s.NoError(err)
	s.Equal(`{"title":"t","price":{"buy":2}}`, out)
	s.Less(strings.Index(out, `"title"`), strings.Index(out, `"price"`))
}

func (s *SerializerSuite) TestProjection() {
	p := &testProduct{Title: `Foo "Bar"`, Description: ptr("x")}
	out, err := s.s.EncodeProjected(p, Keep("title"))
	s.NoError(err)
	s.Equal(`{"title":"Foo \"Bar\""}`, out)

	// 原记录不受影响。
	s.Equal("x", *p.Description)
	out, err = s.s.Encode(p)
	s.NoError(err)
	s.Equal(`{"title":"Foo \"Bar\"","description":"x"}`, out)
}

func (s *SerializerSuite) TestProjectionKeySet() {
	p := &testProduct{Title: "t", Price: &testPrice{Buy: ptr[uint32](9), Rent: ptr[uint32](1)}}

	// 未知字段名被忽略，空字段不输出，保留的嵌套记录整体输出。
	out, err := s.s.EncodeProjected(p, Keep("price", "description", "unknown"))
	s.NoError(err)
	s.Equal(`{"price":{"buy":9,"rent":1}}`, out)

	out, err = s.s.EncodeProjected(p, Keep())
	s.NoError(err)
	s.Equal(`{}`, out)

	full, err := s.s.Encode(p)
	s.NoError(err)
	out, err = s.s.EncodeProjected(p, nil)
	s.NoError(err)
	s.Equal(full, out)
}

func (s *SerializerSuite) TestEscapingRoundTrip() {
	inputs := []string{
		`quote " and backslash \`,
		"line\nbreak\rcarriage\ttab",
		"control \x01\x1f",
		"中文 и emoji 😀",
		"<script>&</script>",
		"  ",
		"",
	}
	for _, input := range inputs {
		literal, err := Escape(input)
		s.NoError(err)
		var decoded string
		s.NoError(json.UnmarshalFromString(literal, &decoded))
		s.Equal(input, decoded)

		out, err := s.s.Encode(&testProduct{Title: input})
		s.NoError(err)
		s.True(json.Valid([]byte(out)))
		var obj map[string]string
		s.NoError(json.UnmarshalFromString(out, &obj))
		s.Equal(input, obj["title"])
	}
}

func (s *SerializerSuite) TestEscapeForms() {
	cases := map[string]string{
		"a\nb":  `"a\nb"`,
		"a\tb":  `"a\tb"`,
		"a\rb":  `"a\rb"`,
		`a"b`:   `"a\"b"`,
		`a\b`:   `"a\\b"`,
		"\x01":  `"\u0001"`,
		"<&>":   `"\u003c\u0026\u003e"`,
		"中":     `"中"`,
		"plain": `"plain"`,
	}
	for input, expected := range cases {
		literal, err := Escape(input)
		s.NoError(err)
		s.Equal(expected, literal)
	}
}

func (s *SerializerSuite) TestEscapeHTMLDisabled() {
	ser, err := NewSerializer(newTestRegistry(), WithEscapeHTML(false))
	s.Require().NoError(err)
	out, err := ser.Encode(&testProduct{Title: "<b>&"})
	s.NoError(err)
	s.Equal(`{"title":"<b>&"}`, out)
}

func (s *SerializerSuite) TestRegistryGate() {
	secret := &testSecret{Key: "k"}
	out, err := s.s.Encode(secret)
	s.ErrorIs(err, merr.ErrTypeNotSupported)
	s.Empty(out)
	s.Equal("k", secret.Key)

	_, err = s.s.EncodeProjected(secret, Keep("key"))
	s.ErrorIs(err, merr.ErrTypeNotSupported)
	s.Equal(merr.InputError, merr.GetErrorType(err))
}

func (s *SerializerSuite) TestNilRecord() {
	_, err := s.s.Encode(nil)
	s.ErrorIs(err, merr.ErrParameterMissing)

	var p *testProduct
	_, err = s.s.Encode(p)
	s.ErrorIs(err, merr.ErrParameterMissing)
}

func (s *SerializerSuite) TestNestedRegistryCheck() {
	reg := MustNewRegistry(TypeOf[*testProduct]())
	p := &testProduct{Title: "t", Price: &testPrice{Buy: ptr[uint32](1)}}

	strict, err := NewSerializer(reg)
	s.Require().NoError(err)
	_, err = strict.Encode(p)
	s.ErrorIs(err, merr.ErrTypeNotSupported)
	s.Contains(err.Error(), "Product.price")

	loose, err := NewSerializer(reg, WithNestedCheck(false))
	s.Require().NoError(err)
	out, err := loose.Encode(p)
	s.NoError(err)
	s.Equal(`{"title":"t","price":{"buy":1}}`, out)
}

func (s *SerializerSuite) TestMaxDepth() {
	ser, err := NewSerializer(newTestRegistry(), WithMaxDepth(3))
	s.Require().NoError(err)

	chain := &testNode{Name: "a", Next: &testNode{Name: "b", Next: &testNode{Name: "c"}}}
	out, err := ser.Encode(chain)
	s.NoError(err)
	s.Equal(`{"name":"a","next":{"name":"b","next":{"name":"c"}}}`, out)

	chain.Next.Next.Next = &testNode{Name: "d"}
	out, err = ser.Encode(chain)
	s.ErrorIs(err, merr.ErrRecursionTooDeep)
	s.Empty(out)
}

func (s *SerializerSuite) TestCycle() {
	a := &testNode{Name: "a"}
	b := &testNode{Name: "b", Next: a}
	a.Next = b

	_, err := s.s.Encode(a)
	s.ErrorIs(err, merr.ErrRecursionTooDeep)
	s.Contains(err.Error(), "cycle detected")

	self := &testNode{Name: "self"}
	self.Next = self
	_, err = s.s.Encode(self)
	s.ErrorIs(err, merr.ErrRecursionTooDeep)
}

func (s *SerializerSuite) TestSharedRecordIsNotCycle() {
	shared := &testNode{Name: "s"}
	out, err := s.s.Encode(&testPair{Left: shared, Right: shared})
	s.NoError(err)
	s.Equal(`{"left":{"name":"s"},"right":{"name":"s"}}`, out)
}

func (s *SerializerSuite) TestFieldPanic() {
	out, err := s.s.Encode(&testBroken{})
	s.ErrorIs(err, merr.ErrEncodingFailed)
	s.Contains(err.Error(), "field=boom")
	s.Contains(err.Error(), "storage offline")
	s.Empty(out)
}

func (s *SerializerSuite) TestVerifyOutput() {
	ser, err := NewSerializer(newTestRegistry(), WithVerifyOutput(true))
	s.Require().NoError(err)
	out, err := ser.Encode(&testProduct{Title: "t", Price: &testPrice{Buy: ptr[uint32](1)}})
	s.NoError(err)
	s.Equal(`{"title":"t","price":{"buy":1}}`, out)
}

func (s *SerializerSuite) TestReader() {
	p := &testProduct{Title: "t"}
	text, err := s.s.Encode(p)
	s.Require().NoError(err)

	r, err := s.s.EncodeReader(p)
	s.Require().NoError(err)
	data, err := io.ReadAll(r)
	s.NoError(err)
	s.Equal(text, string(data))

	_, err = r.Seek(0, io.SeekStart)
	s.NoError(err)
	data, err = io.ReadAll(r)
	s.NoError(err)
	s.Equal(text, string(data))

	r, err = s.s.EncodeProjectedReader(&testProduct{Title: "t", Description: ptr("d")}, Keep("description"))
	s.Require().NoError(err)
	data, err = io.ReadAll(r)
	s.NoError(err)
	s.Equal(`{"description":"d"}`, string(data))

	_, err = s.s.EncodeReader(&testSecret{})
	s.ErrorIs(err, merr.ErrTypeNotSupported)
}

func (s *SerializerSuite) TestEncodeBytesIsOwned() {
	first, err := s.s.EncodeBytes(&testProduct{Title: "first"})
	s.Require().NoError(err)
	_, err = s.s.EncodeBytes(&testProduct{Title: "second"})
	s.Require().NoError(err)
	s.Equal(`{"title":"first"}`, string(first))
}

func (s *SerializerSuite) TestMarshal() {
	out, err := s.s.Marshal(&testPrice{Buy: ptr[uint32](1)})
	s.NoError(err)
	s.Equal(`{"buy":1}`, string(out))

	out, err = s.s.Marshal([]Record{&testPrice{Buy: ptr[uint32](1)}, &testProduct{Title: "t"}})
	s.NoError(err)
	s.Equal(`[{"buy":1},{"title":"t"}]`, string(out))

	out, err = s.s.Marshal([]*testProduct{{Title: "a"}, {Title: "b"}})
	s.NoError(err)
	s.Equal(`[{"title":"a"},{"title":"b"}]`, string(out))

	out, err = s.s.Marshal([]string{"a", `"`})
	s.NoError(err)
	s.Equal(`["a","\""]`, string(out))

	out, err = s.s.Marshal([]uint64{1, 2})
	s.NoError(err)
	s.Equal(`[1,2]`, string(out))

	out, err = s.s.Marshal([]int32{-1, 2})
	s.NoError(err)
	s.Equal(`[-1,2]`, string(out))

	_, err = s.s.Marshal(map[string]string{"a": "b"})
	s.ErrorIs(err, merr.ErrTypeNotSupported)

	_, err = s.s.Marshal(nil)
	s.ErrorIs(err, merr.ErrParameterMissing)
}

func TestSerializer(t *testing.T) {
	suite.Run(t, new(SerializerSuite))
}

func TestNewSerializer(t *testing.T) {
	_, err := NewSerializer(nil)
	if !merr.ErrParameterMissing.Is(err) {
		t.Fatalf("expected missing parameter, got %v", err)
	}

	_, err = NewSerializer(newTestRegistry(), WithMaxDepth(0))
	if !merr.ErrParameterInvalid.Is(err) {
		t.Fatalf("expected invalid parameter, got %v", err)
	}

	s, err := NewSerializer(newTestRegistry(), WithConfig(Config{MaxDepth: 8}))
	if err != nil {
		t.Fatal(err)
	}
	if s.Config().CheckNested || s.Config().EscapeHTML || s.Config().MaxDepth != 8 {
		t.Fatalf("unexpected config %+v", s.Config())
	}
}

func TestLatencyMs(t *testing.T) {
	assert.Equal(t, 0.25, latencyMs(250*time.Microsecond))
	assert.Equal(t, 0.0015, latencyMs(1500*time.Nanosecond))
	assert.Equal(t, 3.0, latencyMs(3*time.Millisecond))
}

func objectLatency(t *testing.T, reg *prometheus.Registry) (uint64, float64) {
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "shape" && lp.GetValue() == metrics.ObjectShape {
					h := m.GetHistogram()
					return h.GetSampleCount(), h.GetSampleSum()
				}
			}
		}
	}
	return 0, 0
}

func TestEncodeLatencyObserved(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(metrics.JSONFmtEncodeLatency)

	s, err := NewSerializer(newTestRegistry())
	require.NoError(t, err)
	_, err = s.Encode(&testPrice{Buy: ptr[uint32](1)})
	require.NoError(t, err)
	count, sum := objectLatency(t, reg)

	_, err = s.Encode(&testProduct{Title: strings.Repeat("x", 4096)})
	require.NoError(t, err)
	count2, sum2 := objectLatency(t, reg)

	assert.Equal(t, count+1, count2)
	assert.Greater(t, sum2, sum)
}
