// Package catalog reglas de forma para nombres de categorías y productos.
package catalog

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var productNameRe = regexp.MustCompile(`^[\p{L} ]+$`)

// ValidateCategoryName exige 3-50 caracteres.
func ValidateCategoryName(name string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	if n < 3 || n > 50 {
		return fmt.Errorf("name debe tener entre 3 y 50 caracteres")
	}
	return nil
}

// ValidateProductName exige 3-100 caracteres, solo letras y espacios.
func ValidateProductName(name string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	if n < 3 || n > 100 {
		return fmt.Errorf("name debe tener entre 3 y 100 caracteres")
	}
	if !productNameRe.MatchString(name) {
		return fmt.Errorf("name solo admite letras y espacios")
	}
	return nil
}
