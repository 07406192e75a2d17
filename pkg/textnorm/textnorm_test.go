package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/almoxarifado-api/pkg/textnorm"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "sao paulo", textnorm.Fold("  São   Paulo "))
	assert.Equal(t, "clinica medica", textnorm.Fold("Clínica MÉDICA"))
	assert.Equal(t, "acucar", textnorm.Fold("Açúcar"))
	assert.Equal(t, "", textnorm.Fold("   "))
}

func TestKey(t *testing.T) {
	assert.Equal(t, "luva de procedimento mat-001", textnorm.Key("Luva de Procedimento", "", "MAT-001"))
}

func TestLikePattern_EscapaComodines(t *testing.T) {
	assert.Equal(t, `%50\% off%`, textnorm.LikePattern("50% OFF"))
	assert.Equal(t, `%a\_b%`, textnorm.LikePattern("a_b"))
}
