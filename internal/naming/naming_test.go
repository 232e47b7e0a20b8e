package naming_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fromrow-generator/internal/naming"
)

func TestConvention_Convert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		convention naming.Convention
		in         string
		want       string
	}{
		{naming.Same, "super_description", "super_description"},
		{naming.Pascal, "super_description", "SuperDescription"},
		{naming.Pascal, "X", "X"},
		{naming.Pascal, "Description", "Description"},
		{naming.Pascal, "userID", "UserID"},
		{naming.Pascal, "UserID", "UserID"},
		{naming.Pascal, "http_URL", "HttpURL"},
		{naming.Snake, "UserID", "user_id"},
		{naming.Snake, "SuperDescription", "super_description"},
		{naming.Snake, "XMLParser", "xml_parser"},
		{naming.Lower, "FieldName", "fieldname"},
		{"", "Name", "Name"},
	}

	for _, tt := range tests {
		t.Run(tt.convention.String()+"/"+tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.convention.Convert(tt.in))
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"pascal", "Pascal", " snake ", "lower", "same"} {
		c, err := naming.Parse(s)
		require.NoError(t, err, s)
		assert.Contains(t, naming.Conventions, c)
	}

	c, err := naming.Parse("")
	require.NoError(t, err)
	assert.Equal(t, naming.Same, c)

	_, err = naming.Parse("camel")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown naming convention "camel"`)
}
