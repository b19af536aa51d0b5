package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos_service/internal/domain"
)

type item struct {
	id   string
	name string
}

func (i item) Key() string { return i.id }

func seeded() Collection[item] {
	s, _ := Reduce(NewCollection[item](), SetAll([]item{{"1", "a"}, {"2", "b"}, {"3", "c"}}))
	return s
}

func TestNewCollectionStartsLoading(t *testing.T) {
	s := NewCollection[item]()
	assert.True(t, s.IsLoading)
	assert.Empty(t, s.Items)
	assert.Empty(t, s.Error)
}

func TestReduceSetAllClearsLoadingAndError(t *testing.T) {
	s := NewCollection[item]()
	s, _ = Reduce(s, SetError[item]("boom"))

	s, ok := Reduce(s, SetAll([]item{{"1", "a"}}))

	require.True(t, ok)
	assert.False(t, s.IsLoading)
	assert.Empty(t, s.Error)
	assert.Len(t, s.Items, 1)
}

func TestReduceFlagsOnlyTouchTheirField(t *testing.T) {
	s := seeded()

	s, _ = Reduce(s, SetLoading[item](true))
	assert.True(t, s.IsLoading)
	assert.Len(t, s.Items, 3)

	s, _ = Reduce(s, SetError[item]("failed"))
	assert.Equal(t, "failed", s.Error)
	assert.True(t, s.IsLoading)
}

func TestReduceAddAppends(t *testing.T) {
	s, ok := Reduce(seeded(), Add(item{"4", "d"}))
	require.True(t, ok)
	assert.Equal(t, "4", s.Items[3].id)
}

func TestReduceUpdate(t *testing.T) {
	s, ok := Reduce(seeded(), Update(item{"2", "B"}))
	require.True(t, ok)
	assert.Equal(t, []item{{"1", "a"}, {"2", "B"}, {"3", "c"}}, s.Items)

	before := seeded()
	after, ok := Reduce(before, Update(item{"99", "x"}))
	assert.False(t, ok)
	assert.Equal(t, before.Items, after.Items)
}

func TestReduceDelete(t *testing.T) {
	s, ok := Reduce(seeded(), Delete[item]("2"))
	require.True(t, ok)
	assert.Equal(t, []item{{"1", "a"}, {"3", "c"}}, s.Items)

	_, ok = Reduce(seeded(), Delete[item]("99"))
	assert.False(t, ok)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	tests := []struct {
		name   string
		action Action[item]
	}{
		{"add", Add(item{"4", "d"})},
		{"update", Update(item{"1", "changed"})},
		{"delete", Delete[item]("1")},
		{"set all", SetAll([]item{{"9", "z"}})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := seeded()
			snapshot := s.Clone()

			_, _ = Reduce(s, tt.action)

			assert.Equal(t, snapshot.Items, s.Items)
		})
	}
}

func TestFind(t *testing.T) {
	got, ok := Find(seeded().Items, "3")
	require.True(t, ok)
	assert.Equal(t, "c", got.name)

	_, ok = Find(seeded().Items, "nope")
	assert.False(t, ok)
}

func TestCloneCopiesNestedSlices(t *testing.T) {
	product := domain.Product{ID: "p1", Variants: []domain.ProductVariant{{ID: "v1", Stock: 5}}}
	s, _ := Reduce(NewCollection[domain.Product](), SetAll([]domain.Product{product}))
	product.Variants[0].Stock = 1
	require.Equal(t, 5, s.Items[0].Variants[0].Stock, "SetAll must not keep the caller's variants")

	snap := s.Clone()
	snap.Items[0].Variants[0].Stock = 0
	snap.Items[0].Variants = append(snap.Items[0].Variants, domain.ProductVariant{ID: "v2"})
	assert.Equal(t, 5, s.Items[0].Variants[0].Stock)
	assert.Len(t, s.Items[0].Variants, 1)

	updated := domain.Product{ID: "p1", Variants: []domain.ProductVariant{{ID: "v1", Stock: 9}}}
	s, ok := Reduce(s, Update(updated))
	require.True(t, ok)
	updated.Variants[0].Stock = 2
	assert.Equal(t, 9, s.Items[0].Variants[0].Stock)
}
