package paginate

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"smartedu_backend/internals/databases/dbtest"
	"smartedu_backend/internals/helpers/apperror"
)

type student struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Class      string    `json:"class"`
	RollNumber string    `json:"roll_number"`
	Secret     string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

func seedStudents(t *testing.T) *gorm.DB {
	t.Helper()
	db := dbtest.Open(t, &student{})

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []student{
		{Name: "Budi Santoso", Email: "budi@school.id", Class: "5", RollNumber: "A01", Secret: "s1"},
		{Name: "Siti Aminah", Email: "siti@school.id", Class: "5", RollNumber: "A02", Secret: "s2"},
		{Name: "Budi Hartono", Email: "hartono@school.id", Class: "6", RollNumber: "B01", Secret: "s3"},
		{Name: "Andi 100%", Email: "andi@school.id", Class: "6", RollNumber: "B02", Secret: "s4"},
		{Name: "Rina", Email: "rina@school.id", Class: "6", RollNumber: "B03", Secret: "s5"},
	}
	for i := range rows {
		rows[i].CreatedAt = base.Add(time.Duration(i) * time.Hour)
	}
	require.NoError(t, db.Create(&rows).Error)
	return db
}

func names(rows []student) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Name)
	}
	return out
}

func TestGormCollection_DefaultSortIsNewestFirst(t *testing.T) {
	coll := NewGormCollection[student](seedStudents(t), "students")

	res, err := Execute[student](context.Background(), coll, nil, Parse(RawOptions{"limit": 2}))
	require.NoError(t, err)

	assert.Equal(t, []string{"Rina", "Andi 100%"}, names(res.Results))
	assert.Equal(t, int64(5), res.TotalResults)
	assert.Equal(t, 3, res.TotalPages)
}

func TestGormCollection_LastPageIsShort(t *testing.T) {
	coll := NewGormCollection[student](seedStudents(t), "students")

	res, err := Execute[student](context.Background(), coll, nil, Parse(RawOptions{"limit": "2", "page": "3"}))
	require.NoError(t, err)

	assert.Len(t, res.Results, 1)
	assert.Equal(t, 3, res.Page)
}

func TestGormCollection_UnknownSortFallsBackToNewestFirst(t *testing.T) {
	coll := NewGormCollection[student](seedStudents(t), "students")

	res, err := Execute[student](context.Background(), coll, nil, Parse(RawOptions{"sortBy": "bogus:asc", "limit": 2}))
	require.NoError(t, err)
	assert.Equal(t, []string{"Rina", "Andi 100%"}, names(res.Results))

	res, err = Execute[student](context.Background(), coll, nil, Parse(RawOptions{"sortBy": "bogus:asc", "limit": 2, "page": 2}))
	require.NoError(t, err)
	assert.Equal(t, []string{"Budi Hartono", "Siti Aminah"}, names(res.Results))
}

func TestGormCollection_HugeLimitIsClamped(t *testing.T) {
	coll := NewGormCollection[student](seedStudents(t), "students")

	res, err := Execute[student](context.Background(), coll, nil, Parse(RawOptions{"limit": "2147483647"}))
	require.NoError(t, err)
	assert.Equal(t, MaxLimit, res.Limit)
	assert.Len(t, res.Results, 5)
	assert.Equal(t, 1, res.TotalPages)

	res, err = Execute[student](context.Background(), coll, nil, Descriptor{Limit: 1 << 30})
	require.NoError(t, err)
	assert.Equal(t, MaxLimit, res.Limit)
	assert.Len(t, res.Results, 5)
}

func TestGormCollection_SearchIsCaseInsensitiveAndOfOrs(t *testing.T) {
	coll := NewGormCollection[student](seedStudents(t), "students")

	d := Parse(RawOptions{"search": "BUDI school", "searchFields": "name,email", "sortBy": "roll_number:asc"})
	res, err := Execute[student](context.Background(), coll, nil, d)
	require.NoError(t, err)
	assert.Equal(t, []string{"Budi Santoso", "Budi Hartono"}, names(res.Results))

	d = Parse(RawOptions{"search": "budi hartono", "searchFields": "name,email"})
	res, err = Execute[student](context.Background(), coll, nil, d)
	require.NoError(t, err)
	assert.Equal(t, []string{"Budi Hartono"}, names(res.Results))
}

func TestGormCollection_SearchEscapesWildcards(t *testing.T) {
	coll := NewGormCollection[student](seedStudents(t), "students")

	res, err := Execute[student](context.Background(), coll, nil, Parse(RawOptions{"search": "%", "searchFields": "name"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"Andi 100%"}, names(res.Results))
}

func TestGormCollection_BaseFilterAndMultiSort(t *testing.T) {
	coll := NewGormCollection[student](seedStudents(t), "students")

	d := Parse(RawOptions{"sortBy": "class:desc,name:asc"})
	res, err := Execute[student](context.Background(), coll, In{Field: "class", Values: []any{"5", "6"}}, d)
	require.NoError(t, err)
	assert.Equal(t, []string{"Andi 100%", "Budi Hartono", "Rina", "Budi Santoso", "Siti Aminah"}, names(res.Results))

	res, err = Execute[student](context.Background(), coll, Eq{Field: "class", Value: "5"}, Parse(nil))
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.TotalResults)
}

func TestGormCollection_ResolvesFieldAliases(t *testing.T) {
	coll := NewGormCollection[student](seedStudents(t), "students")

	for _, alias := range []string{"roll_number", "RollNumber", "rollNumber"} {
		col, ok := coll.Column(alias)
		assert.True(t, ok, alias)
		assert.Equal(t, "roll_number", col)
	}
	col, ok := coll.Column("createdAt")
	assert.True(t, ok)
	assert.Equal(t, "created_at", col)

	_, ok = coll.Column("secret")
	assert.False(t, ok, "json:\"-\" fields stay private")
}

func TestGormCollection_Projection(t *testing.T) {
	coll := NewGormCollection[student](seedStudents(t), "students")

	res, err := Execute[student](context.Background(), coll, nil, Parse(RawOptions{"projectBy": "email:hide", "limit": 1}))
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.Empty(t, res.Results[0].Email)
	assert.NotEmpty(t, res.Results[0].Name)

	res, err = Execute[student](context.Background(), coll, nil, Parse(RawOptions{"projectBy": "name:include", "limit": 1}))
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.NotEmpty(t, res.Results[0].Name)
	assert.Empty(t, res.Results[0].RollNumber)
}

func TestGormCollection_UnknownFilterFieldIsValidationError(t *testing.T) {
	coll := NewGormCollection[student](seedStudents(t), "students")

	_, err := Execute[student](context.Background(), coll, nil, Parse(RawOptions{"search": "x", "searchFields": "secret"}))
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeValidation))
}

func TestGormCollection_StoreErrorIsPaginationFailure(t *testing.T) {
	db := dbtest.Open(t) // no tables
	coll := NewGormCollection[student](db, "students")

	_, err := Execute[student](context.Background(), coll, nil, Parse(nil))
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodePagination), fmt.Sprint(err))
}
