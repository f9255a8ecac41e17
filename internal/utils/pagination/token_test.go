package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	cursor := Cursor{
		SortDate:  time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2023, 5, 15, 14, 30, 45, 123456789, time.UTC),
		ID:        "6f1c2a8e-1f0b-4c55-9d63-0f6f3b3f9f11",
	}

	token := EncodeToken(cursor)
	assert.NotEmpty(t, token, "Token should not be empty")

	decoded, err := DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, cursor, decoded)

	// Zero time values survive a round trip
	zero := Cursor{ID: "x"}
	decodedZero, err := DecodeToken(EncodeToken(zero))
	require.NoError(t, err)
	assert.Equal(t, zero, decodedZero)
}

func TestDecodeTokenError(t *testing.T) {
	_, err := DecodeToken("this is not base64!")
	assert.ErrorContains(t, err, "base64 decode")

	_, err = DecodeToken(EncodeMulti("2023-05-15T00:00:00Z"))
	assert.ErrorContains(t, err, "split")

	_, err = DecodeToken(EncodeMulti("notadate", "2023-05-15T14:30:45Z", "id"))
	assert.ErrorContains(t, err, "sort date parse")

	_, err = DecodeToken(EncodeMulti("2023-05-15T00:00:00Z", "2023-05-15T14:30:45Z", ""))
	assert.ErrorContains(t, err, "missing id")
}

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, NormalizeLimit(0))
	assert.Equal(t, DefaultLimit, NormalizeLimit(-5))
	assert.Equal(t, 7, NormalizeLimit(7))
	assert.Equal(t, MaxLimit, NormalizeLimit(MaxLimit+1))
}

func TestPage(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []int{1, 2, 3}
	cursorOf := func(i int) Cursor {
		return Cursor{SortDate: base, CreatedAt: base.Add(time.Duration(i) * time.Second), ID: "row"}
	}

	page, next := Page(rows, 2, cursorOf)
	assert.Equal(t, []int{1, 2}, page)
	require.NotNil(t, next)
	decoded, err := DecodeToken(*next)
	require.NoError(t, err)
	assert.Equal(t, base.Add(2*time.Second), decoded.CreatedAt)

	page, next = Page(rows, 3, cursorOf)
	assert.Len(t, page, 3)
	assert.Nil(t, next)
}
