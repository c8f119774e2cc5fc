// Package accesscode valida e normaliza o código de acesso de 9 dígitos que
// identifica cada organização. Toda a aplicação usa exatamente este par de
// funções; a regra nunca é duplicada em outro lugar.
package accesscode

import "strings"

// Length é o tamanho canônico do código.
const Length = 9

// IsValid informa se code tem exatamente 9 dígitos ASCII, sem separadores.
func IsValid(code string) bool {
	if len(code) != Length {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}

// Normalize remove tudo que não for dígito (hífens, espaços etc.) e trunca o
// resíduo em 9 dígitos. Não valida nem preenche: a validação é um passo
// separado via IsValid.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			b.WriteByte(raw[i])
		}
	}
	s := b.String()
	if len(s) > Length {
		s = s[:Length]
	}
	return s
}
