// Package validation contiene reglas de formato para documentos y datos de contacto
// (CNPJ, CEP, UF, email). Las reglas de negocio viven en los casos de uso.
package validation

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

var (
	ErrInvalidCNPJ  = errors.New("CNPJ inválido")
	ErrInvalidCEP   = errors.New("CEP inválido")
	ErrInvalidState = errors.New("UF inválida")
	ErrInvalidEmail = errors.New("email inválido")
)

var cnpjWeights1 = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
var cnpjWeights2 = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}

// Digits devuelve solo los dígitos de s.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateCNPJ valida un CNPJ con o sin máscara (00.000.000/0000-00) incluyendo los dígitos verificadores.
func ValidateCNPJ(cnpj string) error {
	d := Digits(cnpj)
	if len(d) != 14 {
		return fmt.Errorf("%w: debe tener 14 dígitos", ErrInvalidCNPJ)
	}
	if strings.Count(d, d[:1]) == 14 {
		return fmt.Errorf("%w: dígitos repetidos", ErrInvalidCNPJ)
	}
	if checkDigit(d[:12], cnpjWeights1) != int(d[12]-'0') || checkDigit(d[:13], cnpjWeights2) != int(d[13]-'0') {
		return fmt.Errorf("%w: dígito verificador no coincide", ErrInvalidCNPJ)
	}
	return nil
}

func checkDigit(digits string, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += int(digits[i]-'0') * w
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}

// FormatCNPJ aplica la máscara 00.000.000/0000-00; devuelve s sin cambios si no tiene 14 dígitos.
func FormatCNPJ(s string) string {
	d := Digits(s)
	if len(d) != 14 {
		return s
	}
	return d[:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:]
}

// ValidateCEP acepta 00000-000 o 00000000.
func ValidateCEP(cep string) error {
	if len(Digits(cep)) != 8 {
		return ErrInvalidCEP
	}
	return nil
}

var states = map[string]struct{}{
	"AC": {}, "AL": {}, "AP": {}, "AM": {}, "BA": {}, "CE": {}, "DF": {}, "ES": {}, "GO": {},
	"MA": {}, "MT": {}, "MS": {}, "MG": {}, "PA": {}, "PB": {}, "PR": {}, "PE": {}, "PI": {},
	"RJ": {}, "RN": {}, "RS": {}, "RO": {}, "RR": {}, "SC": {}, "SP": {}, "SE": {}, "TO": {},
}

// ValidateState valida una UF brasileña de dos letras (sin importar mayúsculas).
func ValidateState(uf string) error {
	if _, ok := states[strings.ToUpper(strings.TrimSpace(uf))]; !ok {
		return ErrInvalidState
	}
	return nil
}

// ValidateEmail valida una dirección simple (sin nombre visible).
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}
	return nil
}
