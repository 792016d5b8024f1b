package state

import (
	"testing"

	"uadmin/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(users []domain.User) []int64 {
	out := make([]int64, len(users))
	for i, u := range users {
		out[i] = u.ID
	}
	return out
}

func assertSorted(t *testing.T, s State) {
	t.Helper()
	for i := 1; i < len(s.Users); i++ {
		assert.Less(t, s.Users[i-1].ID, s.Users[i].ID, "users out of order: %v", ids(s.Users))
	}
}

func TestNew(t *testing.T) {
	s := New(5, domain.FilterAll)
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, 5, s.PageSize)

	assert.Equal(t, 3, New(4, domain.FilterAll).PageSize, "unknown sizes fall back to the default")
}

func TestReduce_KeepsUsersSorted(t *testing.T) {
	s := New(3, domain.FilterAll)

	s = Reduce(s, Loaded{Users: []domain.User{{ID: 9}, {ID: 2}, {ID: 5}}})
	assertSorted(t, s)
	assert.Equal(t, []int64{2, 5, 9}, ids(s.Users))

	s = Reduce(s, UserSaved{User: domain.User{ID: 1, Name: "nuevo"}})
	assertSorted(t, s)
	assert.Equal(t, []int64{1, 2, 5, 9}, ids(s.Users))

	s = Reduce(s, UserSaved{User: domain.User{ID: 5, Name: "editado"}})
	assertSorted(t, s)
	assert.Equal(t, []int64{1, 2, 5, 9}, ids(s.Users))
	u, ok := s.User(5)
	require.True(t, ok)
	assert.Equal(t, "editado", u.Name)

	s = Reduce(s, UserRemoved{ID: 2})
	assertSorted(t, s)
	assert.Equal(t, []int64{1, 5, 9}, ids(s.Users))

	s = Reduce(s, UserRemoved{ID: 404})
	assert.Equal(t, []int64{1, 5, 9}, ids(s.Users))
}

func TestReduce_DoesNotAliasInput(t *testing.T) {
	input := []domain.User{{ID: 3, Tasks: []domain.Task{{ID: 1, Title: "a"}}}, {ID: 1}}
	s := Reduce(New(3, domain.FilterAll), Loaded{Users: input})

	assert.Equal(t, int64(3), input[0].ID, "caller slice is not reordered")
	input[0].Tasks[0].Title = "changed"
	u, _ := s.User(3)
	assert.Equal(t, "a", u.Tasks[0].Title)

	before := s
	_ = Reduce(s, UserRemoved{ID: 1})
	assert.Equal(t, []int64{1, 3}, ids(before.Users))
}

func TestReduce_PageSizeResetsPage(t *testing.T) {
	for _, size := range []int{3, 5, 10, 7} {
		s := New(3, domain.FilterAll)
		s = Reduce(s, PageChanged{Page: 4})
		require.Equal(t, 4, s.Page)

		s = Reduce(s, PageSizeChanged{Size: size})
		assert.Equal(t, 1, s.Page, "size %d", size)
	}

	s := Reduce(New(5, domain.FilterAll), PageSizeChanged{Size: 7})
	assert.Equal(t, 5, s.PageSize, "unsupported sizes are ignored")
}

func TestReduce_PageChangedClamps(t *testing.T) {
	s := Reduce(New(3, domain.FilterAll), PageChanged{Page: 0})
	assert.Equal(t, 1, s.Page)

	s = Reduce(s, PageChanged{Page: -3})
	assert.Equal(t, 1, s.Page)
}

func TestReduce_FilterChangedKeepsPage(t *testing.T) {
	s := Reduce(New(3, domain.FilterAll), PageChanged{Page: 2})
	s = Reduce(s, FilterChanged{Filter: domain.FilterBy(domain.StatusCompleted)})

	assert.Equal(t, 2, s.Page)
	st, ok := s.Filter.Status()
	require.True(t, ok)
	assert.Equal(t, domain.StatusCompleted, st)
}

func TestReduce_NilAction(t *testing.T) {
	s := New(3, domain.FilterAll)
	assert.Equal(t, s, Reduce(s, nil))
}

func TestState_View(t *testing.T) {
	s := New(3, domain.FilterBy(domain.StatusPending))
	s = Reduce(s, Loaded{Users: []domain.User{
		{ID: 5, Tasks: []domain.Task{{ID: 1, Status: domain.StatusCompleted}}},
		{ID: 2, Tasks: []domain.Task{{ID: 2, Status: domain.StatusPending}}},
	}})

	page := s.View()
	require.Len(t, page.Groups, 1)
	assert.Equal(t, int64(2), page.Groups[0].User.ID)
	assert.Equal(t, []int64{2, 5}, ids(s.Users))
}
