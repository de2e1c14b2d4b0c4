package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseField(t *testing.T) {
	f, err := ParseField(" title : string ")
	require.NoError(t, err)
	assert.Equal(t, Field{Name: "title", Type: "string"}, f)

	f, err = ParseField("tags:[]string")
	require.NoError(t, err)
	assert.Equal(t, "[]string", f.Type)

	for _, bad := range []string{"title", "1x:int", "type:int", "rs:int", "at:time.Time", "x:"} {
		t.Run(bad, func(t *testing.T) {
			_, err := ParseField(bad)
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Package: "todo",
		Type:    "Todo",
		Fields:  []Field{{Name: "title", Type: "string"}},
	}
	require.NoError(t, cfg.Validate())

	clash := *cfg
	clash.Fields = []Field{{Name: "t", Type: "int"}}
	assert.ErrorContains(t, clash.Validate(), "receiver")

	dup := *cfg
	dup.Fields = []Field{{Name: "title", Type: "string"}, {Name: "Title", Type: "string"}}
	assert.ErrorContains(t, dup.Validate(), "both generate method Title")

	object := *cfg
	object.Fields = []Field{{Name: "object", Type: "int"}}
	assert.ErrorContains(t, object.Validate(), "reserved method")

	empty := *cfg
	empty.Fields = nil
	assert.Error(t, empty.Validate())
}

func TestAccessorsGen(t *testing.T) {
	cfg := &Config{
		Package: "shop",
		Type:    "Item",
		Fields:  []Field{{Name: "price", Type: "float64"}},
		Import:  "example.com/reactivity",
	}
	out := AccessorsGen(cfg)
	assert.Contains(t, out, `import "example.com/reactivity"`)
	assert.Contains(t, out, "func NewItem(rs *reactivity.ReactiveSystem, price float64) *Item {")
	assert.Contains(t, out, `func (i *Item) Price() float64 {`)
	assert.Contains(t, out, `return i.obj.Set("price", price)`)
	assert.Equal(t, "price float64", cfg.paramList())
	assert.Equal(t, "Price", exportedName("price"))
}
