package translate

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	Name  string
	Inner *gear
}

type gear struct{ Teeth int }

type widgetOut struct {
	Name  string
	Inner *gearOut
}

type gearOut struct{ Teeth int }

var gearTranslator = Func[gear, gearOut](func(_ *ModelTranslator, src *gear, dst *gearOut) (*gearOut, error) {
	dst.Teeth = src.Teeth
	return dst, nil
})

var widgetTranslator = Func[widget, widgetOut](func(mt *ModelTranslator, src *widget, dst *widgetOut) (*widgetOut, error) {
	dst.Name = src.Name
	dst.Inner = nil
	if mt != nil {
		inner, err := Translate[gear, gearOut](mt, src.Inner)
		if err != nil {
			return nil, err
		}
		dst.Inner = inner
	}
	return dst, nil
})

func newRegistry(t *testing.T) *ModelTranslator {
	t.Helper()
	mt := NewModelTranslator()
	Register[gear, gearOut](mt, gearTranslator)
	Register[widget, widgetOut](mt, widgetTranslator)
	return mt
}

func TestRegister_ReturnsPrevious(t *testing.T) {
	t.Parallel()

	mt := NewModelTranslator()
	prev := Register[gear, gearOut](mt, gearTranslator)
	assert.Nil(t, prev)

	prev = Register[gear, gearOut](mt, gearTranslator)
	assert.NotNil(t, prev)
	assert.Equal(t, 1, mt.Len())
}

func TestUnregister(t *testing.T) {
	t.Parallel()

	mt := newRegistry(t)
	assert.True(t, Unregister[gear, gearOut](mt))
	assert.False(t, Unregister[gear, gearOut](mt))
	assert.Equal(t, 1, mt.Len())

	_, ok := Find[gear, gearOut](mt)
	assert.False(t, ok)
}

func TestTranslate_NestedWithRegistry(t *testing.T) {
	t.Parallel()

	mt := newRegistry(t)
	out, err := Translate[widget, widgetOut](mt, &widget{Name: "w", Inner: &gear{Teeth: 12}})
	require.NoError(t, err)
	require.NotNil(t, out.Inner)
	assert.Equal(t, "w", out.Name)
	assert.Equal(t, 12, out.Inner.Teeth)
}

func TestTranslate_WithoutRegistrySkipsChildren(t *testing.T) {
	t.Parallel()

	out, err := widgetTranslator.Translate(nil, &widget{Name: "w", Inner: &gear{Teeth: 3}})
	require.NoError(t, err)
	assert.Equal(t, "w", out.Name)
	assert.Nil(t, out.Inner)
}

func TestTranslate_NilSource(t *testing.T) {
	t.Parallel()

	out, err := Translate[widget, widgetOut](newRegistry(t), nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestTranslate_MissingPair(t *testing.T) {
	t.Parallel()

	_, err := Translate[gearOut, gear](newRegistry(t), &gearOut{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoTranslator))
	assert.Contains(t, err.Error(), "gearOut")
}

func TestPopulate_NilArguments(t *testing.T) {
	t.Parallel()

	_, err := gearTranslator.Populate(nil, nil, &gearOut{})
	assert.ErrorIs(t, err, ErrNilSource)

	_, err = gearTranslator.Populate(nil, &gear{}, nil)
	assert.ErrorIs(t, err, ErrNilDestination)
}

func TestTranslateAll_DropsNilAndKeepsOrder(t *testing.T) {
	t.Parallel()

	mt := newRegistry(t)
	out, err := TranslateAll[gear, gearOut](mt, []*gear{{Teeth: 1}, nil, {Teeth: 2}})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 1, out[0].Teeth)
	assert.Equal(t, 2, out[1].Teeth)

	none, err := TranslateAll[gear, gearOut](mt, nil)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestTranslateValues(t *testing.T) {
	t.Parallel()

	out, err := TranslateValues[gear, gearOut](newRegistry(t), []gear{{Teeth: 7}})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 7, out[0].Teeth)
}

func TestModelTranslator_ConcurrentRegisterAndTranslate(t *testing.T) {
	t.Parallel()

	mt := newRegistry(t)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				Register[gear, gearOut](mt, gearTranslator)
				return
			}
			_, err := Translate[gear, gearOut](mt, &gear{Teeth: i})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
}
