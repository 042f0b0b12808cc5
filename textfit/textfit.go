// Package textfit fits text into character budgets. Lengths are counted in
// runes so multi-byte Danish characters and the ellipsis count as one.
package textfit

import "strings"

const ellipsis = '…'

// Truncate returns text unchanged when it fits within maxChars. Otherwise it
// keeps the first maxChars-1 runes, trims trailing whitespace, and appends a
// single ellipsis. For maxChars <= 1 it hard-cuts without an ellipsis.
func Truncate(text string, maxChars int) string {
	if maxChars < 0 {
		maxChars = 0
	}
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	if maxChars <= 1 {
		return string(runes[:maxChars])
	}
	head := strings.TrimRight(string(runes[:maxChars-1]), " \t\n\r")
	return head + string(ellipsis)
}

// FitTriple shrinks (hook, body, cta) until hook+"\n"+body+"\n"+cta fits
// within totalMax runes. Body is shrunk first, then cta, then hook; the hook
// carries the message and must survive longest. When totalMax is below the
// two-separator overhead every allowance clamps to zero and all three fields
// degrade to the empty string.
func FitTriple(hook, body, cta string, totalMax int) (string, string, string) {
	if combinedLen(hook, body, cta) <= totalMax {
		return hook, body, cta
	}

	body = Truncate(body, allowance(totalMax, hook, cta))
	if combinedLen(hook, body, cta) <= totalMax {
		return hook, body, cta
	}

	cta = Truncate(cta, allowance(totalMax, hook, body))
	if combinedLen(hook, body, cta) <= totalMax {
		return hook, body, cta
	}

	hook = Truncate(hook, allowance(totalMax, body, cta))
	return hook, body, cta
}

func combinedLen(hook, body, cta string) int {
	return len([]rune(hook)) + len([]rune(body)) + len([]rune(cta)) + 2
}

func allowance(totalMax int, a, b string) int {
	allowed := totalMax - len([]rune(a)) - len([]rune(b)) - 2
	if allowed < 0 {
		return 0
	}
	return allowed
}
