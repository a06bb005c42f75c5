package backoffice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sequra/e2e-fixtures/internal/fixture"
)

type loginOnly struct {
	Unimplemented
	logins int
}

func (b *loginOnly) Login(LoginOptions) error {
	b.logins++
	return nil
}

func TestUnimplemented(t *testing.T) {
	var b BackOffice = Unimplemented{}

	assert.ErrorIs(t, b.Login(LoginOptions{}), fixture.ErrNotImplemented)
	assert.ErrorIs(t, b.Logout(), fixture.ErrNotImplemented)
	assert.ErrorIs(t, b.GotoSeQuraSettings(PageGeneral), fixture.ErrNotImplemented)
}

func TestUnimplemented_Embedded(t *testing.T) {
	b := &loginOnly{}
	var bo BackOffice = b

	assert.NoError(t, bo.Login(LoginOptions{Username: "admin"}))
	assert.Equal(t, 1, b.logins)
	assert.ErrorIs(t, bo.Logout(), fixture.ErrNotImplemented)
}
