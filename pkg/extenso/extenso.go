// Package extenso spells out monetary amounts in Brazilian Portuguese,
// as required on printed payment receipts ("valor por extenso").
package extenso

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	unidades  = []string{"zero", "um", "dois", "três", "quatro", "cinco", "seis", "sete", "oito", "nove"}
	especiais = []string{"dez", "onze", "doze", "treze", "quatorze", "quinze", "dezesseis", "dezessete", "dezoito", "dezenove"}
	dezenas   = []string{"", "", "vinte", "trinta", "quarenta", "cinquenta", "sessenta", "setenta", "oitenta", "noventa"}
	centenas  = []string{"", "cem", "duzentos", "trezentos", "quatrocentos", "quinhentos", "seiscentos", "setecentos", "oitocentos", "novecentos"}
)

// Reais renders a monetary value as Portuguese words, e.g.
// 12.50 -> "doze reais e cinquenta centavos".
func Reais(value decimal.Decimal) string {
	if value.Sign() <= 0 {
		return "zero reais"
	}

	cents := value.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	reais := cents / 100
	centavos := cents % 100

	var parts []string
	if reais > 0 {
		word := "reais"
		if reais == 1 {
			word = "real"
		}
		parts = append(parts, fmt.Sprintf("%s %s", cardinal(reais), word))
	}
	if centavos > 0 {
		word := "centavos"
		if centavos == 1 {
			word = "centavo"
		}
		parts = append(parts, fmt.Sprintf("%s %s", cardinal(centavos), word))
	}
	if len(parts) == 0 {
		return "zero reais"
	}
	return strings.Join(parts, " e ")
}

// cardinal converts a non-negative integer to words. Values of a million or
// more fall back to digits; canteen receipts never get near that.
func cardinal(n int64) string {
	switch {
	case n < 0 || n >= 1_000_000:
		return fmt.Sprintf("%d", n)
	case n < 1000:
		return upToThousand(n)
	}

	milhares := n / 1000
	resto := n % 1000

	var prefix string
	if milhares == 1 {
		prefix = "mil"
	} else {
		prefix = upToThousand(milhares) + " mil"
	}
	if resto == 0 {
		return prefix
	}
	if resto < 100 || resto%100 == 0 {
		return prefix + " e " + upToThousand(resto)
	}
	return prefix + " " + upToThousand(resto)
}

func upToThousand(n int64) string {
	switch {
	case n < 10:
		return unidades[n]
	case n < 20:
		return especiais[n-10]
	case n < 100:
		d, u := n/10, n%10
		if u == 0 {
			return dezenas[d]
		}
		return dezenas[d] + " e " + unidades[u]
	default:
		c, resto := n/100, n%100
		if resto == 0 {
			return centenas[c]
		}
		if c == 1 {
			return "cento e " + upToThousand(resto)
		}
		return centenas[c] + " e " + upToThousand(resto)
	}
}
