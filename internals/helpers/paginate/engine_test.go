package paginate

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartedu_backend/internals/helpers/apperror"
)

type fakeCollection struct {
	mu        sync.Mutex
	total     int64
	rows      []string
	countErr  error
	findErr   error
	gotFilter []Filter
	gotOpts   FindOptions

	// both calls must be in flight together when set
	rendezvous *sync.WaitGroup
}

func (f *fakeCollection) Count(ctx context.Context, flt Filter) (int64, error) {
	f.record(flt)
	f.wait()
	return f.total, f.countErr
}

func (f *fakeCollection) Find(ctx context.Context, flt Filter, opts FindOptions) ([]string, error) {
	f.record(flt)
	f.mu.Lock()
	f.gotOpts = opts
	f.mu.Unlock()
	f.wait()
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.rows, nil
}

func (f *fakeCollection) record(flt Filter) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gotFilter = append(f.gotFilter, flt)
}

func (f *fakeCollection) wait() {
	if f.rendezvous == nil {
		return
	}
	f.rendezvous.Done()
	f.rendezvous.Wait()
}

func TestExecute_Envelope(t *testing.T) {
	coll := &fakeCollection{total: 23, rows: []string{"a", "b", "c", "d", "e"}}
	d := Parse(RawOptions{"limit": "5", "page": "2", "sortBy": "name:asc", "projectBy": "password:hide"})

	res, err := Execute[string](context.Background(), coll, Eq{Field: "status", Value: "PAID"}, d)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, res.Results)
	assert.Equal(t, 2, res.Page)
	assert.Equal(t, 5, res.Limit)
	assert.Equal(t, int64(23), res.TotalResults)
	assert.Equal(t, 5, res.TotalPages)

	assert.Equal(t, 5, coll.gotOpts.Offset)
	assert.Equal(t, 5, coll.gotOpts.Limit)
	assert.Equal(t, []SortField{{Field: "name"}}, coll.gotOpts.Sort)
	assert.Equal(t, map[string]bool{"password": false}, coll.gotOpts.Projection)
}

func TestExecute_CombinesBaseFilterWithSearch(t *testing.T) {
	coll := &fakeCollection{}
	d := Parse(RawOptions{"search": "budi", "searchFields": "name"})
	base := Eq{Field: "role", Value: "user"}

	_, err := Execute[string](context.Background(), coll, base, d)
	require.NoError(t, err)

	require.Len(t, coll.gotFilter, 2)
	for _, f := range coll.gotFilter {
		assert.Equal(t, And{base, Or{Contains{Field: "name", Term: "budi"}}}, f)
	}
}

func TestExecute_EmptyResult(t *testing.T) {
	res, err := Execute[string](context.Background(), &fakeCollection{}, nil, Descriptor{})
	require.NoError(t, err)

	assert.NotNil(t, res.Results)
	assert.Empty(t, res.Results)
	assert.Equal(t, 0, res.TotalPages)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 10, res.Limit)
}

func TestExecute_TruncatesOverlongPage(t *testing.T) {
	coll := &fakeCollection{total: 4, rows: []string{"a", "b", "c", "d"}}
	res, err := Execute[string](context.Background(), coll, nil, Parse(RawOptions{"limit": 3}))
	require.NoError(t, err)

	assert.Len(t, res.Results, 3)
	assert.Equal(t, 2, res.TotalPages)
}

func TestExecute_WrapsStoreErrors(t *testing.T) {
	cause := errors.New("relation does not exist")

	for name, coll := range map[string]*fakeCollection{
		"count": {countErr: cause},
		"find":  {findErr: cause},
	} {
		t.Run(name, func(t *testing.T) {
			res, err := Execute[string](context.Background(), coll, nil, Parse(nil))
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, apperror.Is(err, apperror.CodePagination))
			assert.ErrorIs(t, err, cause)
		})
	}
}

func TestExecute_ValidationErrorPassesThrough(t *testing.T) {
	coll := &fakeCollection{findErr: apperror.Validation("unknown filter field \"nope\"")}

	_, err := Execute[string](context.Background(), coll, nil, Parse(nil))
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeValidation))
}

func TestExecute_CountAndFindRunConcurrently(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(2)
	coll := &fakeCollection{total: 1, rows: []string{"x"}, rendezvous: &wg}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := Execute[string](context.Background(), coll, nil, Parse(nil))
		assert.NoError(t, err)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("count and find did not overlap")
	}
}
