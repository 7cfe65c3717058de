package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cleaning-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
	"github.com/custodia-labs/cleaning-cli/internal/core/ports/driven"
	"github.com/custodia-labs/cleaning-cli/internal/core/services"
)

func TestInitCmd_CreatesFirstAdmin(t *testing.T) {
	stores := driven.Stores{Users: memory.NewUserStore(), Requests: memory.NewRequestStore()}
	SetServices(&Services{Users: services.NewUserService(stores.Users, stores.Requests)})
	t.Cleanup(func() { SetServices(&Services{}) })

	out, err := run(t, "", "init", "--last-name", "Root", "--first-name", "Admin", "--login", "root", "--password", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, `Created Admin account "root" (id 1)`)

	_, err = run(t, "", "init", "--last-name", "Other", "--first-name", "Admin", "--login", "other", "--password", "secret")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestRegisterCmd_WithFlags(t *testing.T) {
	stores := setupServices(t)

	out, err := run(t, "", "register", "--last-name", "Ivanova", "--first-name", "Anna", "--middle-name", "S.",
		"--login", "anna", "--password", "secret1")

	require.NoError(t, err)
	assert.Contains(t, out, `Created Client account "anna"`)

	u, err := stores.Users.GetByLogin(context.Background(), "anna")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Ivanova Anna S.", u.FullName())
}

func TestRegisterCmd_Prompts(t *testing.T) {
	setupServices(t)

	out, err := run(t, "Ivanova\nAnna\nanna\nsecret1\nsecret1\n", "register")

	require.NoError(t, err)
	assert.Contains(t, out, "Confirm password: ")
	assert.Contains(t, out, `Created Client account "anna"`)
}

func TestRegisterCmd_Rejections(t *testing.T) {
	setupServices(t)

	_, err := run(t, "Ivanova\nAnna\nanna\nsecret1\nsecret2\n", "register")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "passwords do not match")

	_, err = run(t, "", "register", "--last-name", "X", "--first-name", "Y", "--login", "root", "--password", "secret1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	_, err = run(t, "", "register", "--last-name", "X", "--first-name", "Y", "--login", "short", "--password", "123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 6 characters")
}
