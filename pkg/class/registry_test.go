package class

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/typedclass/internal/logging"
	"github.com/aretw0/typedclass/pkg/domain"
)

func newUserRegistry(t *testing.T, opts ...RegistryOption) *Registry {
	t.Helper()
	r := NewRegistry(opts...)
	_, err := r.Register("User", Define("User").
		Field("id", intC).
		Field("name", stringC))
	require.NoError(t, err)
	return r
}

func TestRegistry_LookupAndNames(t *testing.T) {
	r := newUserRegistry(t)
	_, err := r.Register("Group", Decls{{Name: "title", Constraint: stringC}})
	require.NoError(t, err)

	md, ok := r.Lookup("User")
	require.True(t, ok)
	assert.Equal(t, "User", md.Name())

	_, ok = r.Lookup("Missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"User", "Group"}, r.Names())
}

func TestRegistry_DefineBuildsIntoRegistry(t *testing.T) {
	var registered []string
	r := NewRegistry(WithHooks(Hooks{OnRegister: func(md *Metadata) {
		registered = append(registered, md.Name())
	}}))

	md, err := r.Define("Tag").
		Field("label", stringC).
		Build(IgnoreExtra(true))
	require.NoError(t, err)
	assert.True(t, md.Config().IgnoreExtra)

	got, ok := r.Lookup("Tag")
	require.True(t, ok)
	assert.Same(t, md, got)
	assert.Equal(t, []string{"Tag"}, registered)

	_, err = r.Construct("Tag", map[string]any{"label": "x", "extra": 1})
	assert.NoError(t, err)

	// Builders started from the package function stay unbound.
	_, err = Define("Loose").Field("x", intC).Build()
	require.NoError(t, err)
	_, ok = r.Lookup("Loose")
	assert.False(t, ok)
}

func TestRegistry_Construct(t *testing.T) {
	r := newUserRegistry(t)

	inst, err := r.Construct("User", map[string]any{"id": 1, "name": "a"})
	require.NoError(t, err)
	assert.Equal(t, `User(id=1, name="a")`, inst.String())

	_, err = r.Construct("Nope", nil)
	assert.ErrorIs(t, err, domain.ErrUnknownStructure)

	_, err = r.Construct("User", map[string]any{"id": "x", "name": "a"})
	assert.ErrorIs(t, err, domain.ErrTypeMismatch)
}

func TestRegistry_Hooks(t *testing.T) {
	var mu sync.Mutex
	var registered []string
	var events []*ConstructEvent

	r := newUserRegistry(t, WithHooks(Hooks{
		OnRegister: func(md *Metadata) {
			mu.Lock()
			defer mu.Unlock()
			registered = append(registered, md.Name())
		},
		OnConstruct: func(e *ConstructEvent) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, e)
		},
	}))

	_, _ = r.Construct("User", map[string]any{"id": 1, "name": "a"})
	_, _ = r.Construct("User", map[string]any{"id": 1})

	assert.Equal(t, []string{"User"}, registered)
	require.Len(t, events, 2)
	assert.Equal(t, "User", events[0].Structure)
	assert.NotNil(t, events[0].Instance)
	assert.NoError(t, events[0].Err)
	assert.Nil(t, events[1].Instance)
	assert.ErrorIs(t, events[1].Err, domain.ErrMissingRequiredFields)
}

func TestRegistry_RedefinitionWarns(t *testing.T) {
	var buf bytes.Buffer
	r := newUserRegistry(t, WithRegistryLogger(logging.NewWithWriter(&buf, slog.LevelWarn)))

	_, err := r.Register("User", Decls{{Name: "id", Constraint: intC}})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "structure redefined")
	assert.Equal(t, []string{"User"}, r.Names())

	md, _ := r.Lookup("User")
	assert.Equal(t, []string{"id"}, md.Params())
}

func TestRegistry_ConcurrentConstruct(t *testing.T) {
	r := newUserRegistry(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			_, err := r.Construct("User", map[string]any{"id": id, "name": "n"})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
}
