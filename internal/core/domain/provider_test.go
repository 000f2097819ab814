package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/faasbench/internal/core/domain"
)

func TestKeyPath(t *testing.T) {
	t.Parallel()

	path := domain.NewKeyPath(domain.ProviderAWS, domain.CategoryResources, "lambda_role")
	assert.Equal(t, "aws", path.Provider())
	assert.Equal(t, "resources", path.Category())
	assert.Equal(t, "aws.resources.lambda_role", path.String())

	child := path.Child("arn")
	assert.Equal(t, "aws.resources.lambda_role.arn", child.String())
	assert.Equal(t, "aws.resources.lambda_role", path.String(), "Child must not alias the parent")

	root := domain.NewKeyPath(domain.ProviderGCP)
	assert.Empty(t, root.Category())
	assert.Empty(t, domain.KeyPath(nil).Provider())
}

func TestProfile_CheckLanguage(t *testing.T) {
	t.Parallel()

	profile := domain.Profile{
		Provider:  domain.ProviderKubeless,
		Languages: map[domain.Language]string{domain.LanguagePython: ">= 3.6, < 3.9"},
	}

	assert.NoError(t, profile.CheckLanguage(domain.LanguagePython, "3.7"))
	assert.ErrorIs(t, profile.CheckLanguage(domain.LanguagePython, "3.9"), domain.ErrUnsupportedLanguage)
	assert.ErrorIs(t, profile.CheckLanguage(domain.LanguagePython, "three"), domain.ErrUnsupportedLanguage)
	assert.ErrorIs(t, profile.CheckLanguage(domain.LanguageNodeJS, "18"), domain.ErrUnsupportedLanguage)
}
