package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/regma/inventario-api/internal/application/dto"
)

func TestPageRequest_DefaultPage(t *testing.T) {
	cases := []struct {
		in        dto.PageRequest
		wantLimit int
		wantOff   int
	}{
		{dto.PageRequest{}, 20, 0},
		{dto.PageRequest{Limit: 5, Offset: 10}, 5, 10},
		{dto.PageRequest{Limit: 500}, 100, 0},
		{dto.PageRequest{Limit: -3, Offset: -1}, 20, 0},
	}
	for _, c := range cases {
		p := c.in
		p.DefaultPage()
		assert.Equal(t, c.wantLimit, p.Limit)
		assert.Equal(t, c.wantOff, p.Offset)
	}
}
