package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderBy(t *testing.T) {
	allowed := map[string]string{"id": "id", "name": "full_name"}

	clause, err := OrderBy(nil, allowed)
	require.NoError(t, err)
	assert.Empty(t, clause)

	clause, err = OrderBy([]DBOrdering{{Field: "name", Ascending: true}, {Field: "id"}}, allowed)
	require.NoError(t, err)
	assert.Equal(t, " ORDER BY full_name ASC, id DESC", clause)

	_, err = OrderBy([]DBOrdering{{Field: "password", Ascending: true}}, allowed)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []FieldError{{Field: "ordering", Error: "invalid field: password"}}, vErr.Fields)
}
