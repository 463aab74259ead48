package utils_test

import (
	"strings"
	"testing"

	"github.com/SscSPs/fin_manager_app/internal/apperrors"
	"github.com/SscSPs/fin_manager_app/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasher_HashAndMatch(t *testing.T) {
	h := utils.NewPasswordHasher(utils.MinPasswordCost)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, h.Matches("correct horse", hash))
	assert.False(t, h.Matches("battery staple", hash))
	assert.False(t, h.Matches("correct horse", ""))
}

func TestPasswordHasher_CostClamping(t *testing.T) {
	assert.Equal(t, 10, utils.PasswordHasher{}.Cost())
	assert.Equal(t, 10, utils.NewPasswordHasher(0).Cost())
	assert.Equal(t, utils.MinPasswordCost, utils.NewPasswordHasher(1).Cost())
	assert.Equal(t, 31, utils.NewPasswordHasher(99).Cost())
}

func TestPasswordHasher_NeedsRehash(t *testing.T) {
	cheap := utils.NewPasswordHasher(utils.MinPasswordCost)
	hash, err := cheap.Hash("secret-pass")
	require.NoError(t, err)

	assert.False(t, cheap.NeedsRehash(hash))
	assert.True(t, utils.NewPasswordHasher(utils.MinPasswordCost+1).NeedsRehash(hash))
	assert.True(t, cheap.NeedsRehash("not-a-bcrypt-hash"))
}

func TestPasswordHasher_RejectsOverlongPassword(t *testing.T) {
	_, err := utils.NewPasswordHasher(utils.MinPasswordCost).Hash(strings.Repeat("x", 73))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
