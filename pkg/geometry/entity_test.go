package geometry

import (
	"testing"

	"github.com/df07/go-tile-raytracer/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntity_SphereDispatch(t *testing.T) {
	e := NewSphereEntity(core.NewVec3(0, 0, -1), 0.5, grey)

	assert.Equal(t, EntitySphere, e.Kind())
	assert.Equal(t, "sphere", e.Kind().String())
	assert.Same(t, grey, e.Material())
	assert.Equal(t, 0.5, e.Sphere().Radius)

	hit, ok := e.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0.001, 100)
	require.True(t, ok)
	assert.InDelta(t, 0.5, hit.T, 1e-12)
}

func TestEntity_UnknownKindNeverHits(t *testing.T) {
	e := Entity{kind: EntityKind(7)}

	_, ok := e.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0.001, 100)
	assert.False(t, ok)
	assert.Nil(t, e.Material())
	assert.Equal(t, "EntityKind(7)", e.Kind().String())
}
