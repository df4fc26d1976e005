package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPoem_FileUnfile(t *testing.T) {
	p := &Poem{Body: "so much depends / upon"}

	assert.Nil(t, p.CollectionID)
	assert.False(t, p.InCollection("col-abc"))

	p.File("col-abc")
	assert.True(t, p.InCollection("col-abc"))
	assert.False(t, p.InCollection("col-other"))

	p.Unfile()
	assert.Nil(t, p.CollectionID)
	assert.False(t, p.InCollection("col-abc"))
}

func TestStamped_InitTimestamps(t *testing.T) {
	p := &Poem{}
	p.InitTimestamps()

	assert.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)
}

func TestStamped_Touch(t *testing.T) {
	p := &Poem{}
	p.InitTimestamps()

	created := p.CreatedAt
	time.Sleep(time.Millisecond)
	p.Touch()

	assert.Equal(t, created, p.CreatedAt)
	assert.True(t, p.UpdatedAt.After(created))
}
