package errs_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/tm-siteupdate/internal/domain/errs"
)

func TestList_EmptyInitially(t *testing.T) {
	l := errs.NewList()
	assert.True(t, l.Empty())
	assert.Empty(t, l.Errors())
}

func TestList_AddIsConcurrencySafe(t *testing.T) {
	l := errs.NewList()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			l.Addf("worker %d failed", n)
		}(i)
	}
	wg.Wait()

	assert.False(t, l.Empty())
	assert.Len(t, l.Errors(), 50)
}
