package validate

import (
	"testing"

	"github.com/marmotdata/schemakit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rel(t *testing.T, from, to string) *model.Relationship {
	t.Helper()
	r, err := model.NewRelationship(model.RelForeignKey, model.OneToMany,
		model.RelationshipEndpoint{TableID: from}, model.RelationshipEndpoint{TableID: to})
	require.NoError(t, err)
	return r
}

func TestWouldCreateCycle(t *testing.T) {
	existing := []*model.Relationship{rel(t, "a", "b"), rel(t, "b", "c")}

	assert.True(t, WouldCreateCycle(existing, "c", "a"))
	assert.False(t, WouldCreateCycle(existing, "a", "c"))
	assert.False(t, WouldCreateCycle(existing, "x", "y"))
}

func TestFindCycles(t *testing.T) {
	closing := rel(t, "c", "a")
	rels := []*model.Relationship{rel(t, "a", "b"), rel(t, "b", "c"), closing}

	offending := FindCycles(rels)
	require.Len(t, offending, 1)
	assert.Equal(t, closing.ID, offending[0])
}

func TestFindCyclesAcyclic(t *testing.T) {
	rels := []*model.Relationship{rel(t, "a", "b"), rel(t, "b", "c"), rel(t, "a", "c")}
	assert.Empty(t, FindCycles(rels))
}
