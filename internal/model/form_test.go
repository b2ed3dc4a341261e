package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/haukgo/hauk-http/internal/model"
)

func pairs(f model.Form) (kv []string) {
	f.Each(func(k, v string) { kv = append(kv, k, v) })
	return kv
}

func TestFormKeepsInsertionOrder(t *testing.T) {
	f := model.FormOf("sid", "abc", "lat", "59.9", "lon", "10.7")
	f.Set("lat", "60.1") // replaced in place
	f.Set("acc", "12")

	assert.Equal(t, []string{"sid", "abc", "lat", "60.1", "lon", "10.7", "acc", "12"}, pairs(f))
	assert.Equal(t, 4, f.Len())
	v, ok := f.Get("lat")
	assert.True(t, ok)
	assert.Equal(t, "60.1", v)
	_, ok = f.Get("spd")
	assert.False(t, ok)
}

func TestFormOfOddArguments(t *testing.T) {
	assert.Equal(t, []string{"a", "1"}, pairs(model.FormOf("a", "1", "dangling")))
}

func TestFormFromMapSorted(t *testing.T) {
	f := model.FormFromMap(map[string]string{"pwd": "x", "dur": "3600", "int": "1"})
	assert.Equal(t, []string{"dur", "3600", "int", "1", "pwd", "x"}, pairs(f))
}

func TestFormCloneIsIndependent(t *testing.T) {
	f := model.FormOf("a", "1")
	c := f.Clone()
	c.Set("a", "2")
	c.Set("b", "3")

	assert.Equal(t, []string{"a", "1"}, pairs(f))
	assert.Equal(t, []string{"a", "2", "b", "3"}, pairs(c))
}

func TestZeroForm(t *testing.T) {
	var f model.Form
	assert.Zero(t, f.Len())
	assert.Empty(t, pairs(f))
	f.Set("k", "v")
	assert.Equal(t, 1, f.Len())
}
