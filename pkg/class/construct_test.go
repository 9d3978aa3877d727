package class

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/typedclass/pkg/constraint"
	"github.com/aretw0/typedclass/pkg/domain"
)

func TestConstruct_UserScenario(t *testing.T) {
	user := userStructure(t)

	tests := []struct {
		name    string
		kwargs  map[string]any
		wantErr error
		errMsg  string
	}{
		{
			name:   "valid",
			kwargs: map[string]any{"id": 1, "name": "a"},
		},
		{
			name:    "type mismatch on id",
			kwargs:  map[string]any{"id": "1", "name": "a"},
			wantErr: domain.ErrTypeMismatch,
			errMsg:  `field "id" in User must be an instance of int, not string`,
		},
		{
			name:    "missing id",
			kwargs:  map[string]any{"name": "a"},
			wantErr: domain.ErrMissingRequiredFields,
			errMsg:  `User is missing required fields "id"`,
		},
		{
			name:    "unexpected extra",
			kwargs:  map[string]any{"id": 1, "name": "a", "extra": 5},
			wantErr: domain.ErrUnexpectedFields,
			errMsg:  `User got unexpected fields "extra"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, err := user.New(tt.kwargs)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.EqualError(t, err, tt.errMsg)
				assert.Nil(t, inst)
				return
			}
			require.NoError(t, err)
			email, ok := inst.Get("email")
			assert.True(t, ok)
			assert.Nil(t, email)
			assert.False(t, inst.Supplied("email"))
		})
	}
}

func TestConstruct_MissingFieldsAreCollected(t *testing.T) {
	user := userStructure(t)

	_, err := user.New(nil)
	var missing *MissingFieldsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"id", "name"}, missing.Names)
	assert.EqualError(t, err, `User is missing required fields "id", "name"`)
}

func TestConstruct_MismatchBeforeMissing(t *testing.T) {
	user := userStructure(t)

	// id is checked first and fails fast, before name is found missing.
	_, err := user.New(map[string]any{"id": 1.5})
	assert.ErrorIs(t, err, domain.ErrTypeMismatch)
}

func TestConstruct_OptionalFieldMismatch(t *testing.T) {
	user := userStructure(t)

	_, err := user.New(map[string]any{"id": 1, "name": "a", "email": 42})
	require.ErrorIs(t, err, domain.ErrTypeMismatch)
	assert.EqualError(t, err, `field "email" in User must be nil or string, not int`)

	inst, err := user.New(map[string]any{"id": 1, "name": "a", "email": "a@b.c"})
	require.NoError(t, err)
	email, _ := inst.Get("email")
	assert.Equal(t, "a@b.c", email)
	assert.True(t, inst.Supplied("email"))
}

func TestConstruct_PositionalRejected(t *testing.T) {
	user := userStructure(t)

	_, err := user.Construct([]any{1, "a"}, nil)
	require.ErrorIs(t, err, domain.ErrInvalidArgumentShape)
	assert.EqualError(t, err, "User takes no positional arguments (2 given)")
}

func TestConstruct_IgnoreExtra(t *testing.T) {
	user := userStructure(t, IgnoreExtra(true))

	inst, err := user.New(map[string]any{"id": 1, "name": "a", "extra": 5})
	require.NoError(t, err)

	_, ok := inst.Get("extra")
	assert.False(t, ok)
	assert.NotContains(t, inst.Values(), "extra")
}

func TestConstruct_UnexpectedNamesSorted(t *testing.T) {
	user := userStructure(t)

	_, err := user.New(map[string]any{"id": 1, "name": "a", "zeta": 1, "alpha": 2})
	var unexpected *UnexpectedFieldsError
	require.ErrorAs(t, err, &unexpected)
	assert.Equal(t, []string{"alpha", "zeta"}, unexpected.Names)
}

func TestConstruct_DoesNotMutateArguments(t *testing.T) {
	user := userStructure(t, IgnoreExtra(true))
	kwargs := map[string]any{"id": 1, "name": "a", "extra": 5}

	_, err := user.New(kwargs)
	require.NoError(t, err)
	assert.Len(t, kwargs, 3)
}

func TestConstruct_ValueIdentity(t *testing.T) {
	md, err := Define("Holder").Field("items", constraint.ExactOf[[]int]()).Build()
	require.NoError(t, err)

	items := []int{1, 2, 3}
	inst, err := md.New(map[string]any{"items": items})
	require.NoError(t, err)

	got, _ := inst.Get("items")
	assert.Equal(t, reflect.ValueOf(items).Pointer(), reflect.ValueOf(got).Pointer())
}

func TestConstruct_Constraints(t *testing.T) {
	tests := []struct {
		name   string
		c      constraint.Constraint
		accept []any
		reject []any
		msg    string
	}{
		{
			name:   "union",
			c:      constraint.Union(intC, stringC),
			accept: []any{1, "a"},
			reject: []any{1.5, nil},
			msg:    `field "v" in S must be an instance of one of int, string, not float64`,
		},
		{
			name:   "literal",
			c:      constraint.Literal(1, 2, 3),
			accept: []any{1, 2, 3},
			reject: []any{4, "1", int64(1)},
			msg:    `field "v" in S must be exactly one of 1, 2, 3, not 4`,
		},
		{
			name:   "optional",
			c:      constraint.Optional(intC),
			accept: []any{nil, 7},
			reject: []any{"7"},
			msg:    `field "v" in S must be nil or int, not string`,
		},
		{
			name:   "any",
			c:      constraint.Any(),
			accept: []any{nil, 1, "x", []int{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md, err := Define("S").Field("v", tt.c).Build()
			require.NoError(t, err)

			for _, v := range tt.accept {
				_, err := md.New(map[string]any{"v": v})
				assert.NoError(t, err, "value %#v", v)
			}
			for i, v := range tt.reject {
				_, err := md.New(map[string]any{"v": v})
				assert.ErrorIs(t, err, domain.ErrTypeMismatch, "value %#v", v)
				if i == 0 && tt.msg != "" {
					assert.EqualError(t, err, tt.msg)
				}
			}
		})
	}
}

func TestBind(t *testing.T) {
	user := userStructure(t)

	tests := []struct {
		name    string
		doc     any
		wantErr error
	}{
		{"string keys", map[string]any{"id": 1, "name": "a"}, nil},
		{"any keys", map[any]any{"id": 1, "name": "a"}, nil},
		{"nil document", nil, domain.ErrMissingRequiredFields},
		{"sequence", []any{1, "a"}, domain.ErrInvalidArgumentShape},
		{"scalar", 42, domain.ErrInvalidArgumentShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := user.Bind(tt.doc)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
