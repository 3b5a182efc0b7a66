package workflow

import "strings"

// BuildSequence monta a sequência de fases de uma modalidade: primeiro as
// fases padrão escolhidas, na ordem recebida, depois as fases extras do texto
// livre, uma por linha. Linhas vazias ou só com espaços são descartadas.
// Nomes repetidos são mantidos; o resultado nunca é nil.
func BuildSequence(preset []string, freeform string) []string {
	phases := make([]string, 0, len(preset))
	phases = append(phases, preset...)

	for _, line := range strings.Split(freeform, "\n") {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		phases = append(phases, name)
	}
	return phases
}
