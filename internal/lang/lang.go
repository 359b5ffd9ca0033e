// Package lang holds the bundled interface strings.
package lang

import (
	"fmt"
	"sort"
	"strings"
)

// Default is the language used when none is configured.
const Default = "fr"

// Strings is the set of user-facing texts for one language.
type Strings struct {
	Code string

	EndTest      string
	EditMistakes string
	ResetTest    string
	Instructions string

	ResultsTitle string
	// Format strings, each taking one integer.
	ResultTime  string
	ResultRead  string
	ResultWrong string
	ResultScore string

	ChooseText  string
	FilterLabel string
	BuiltinText string
	Loading     string
	NoTexts     string

	MarkedWrong   string
	UnmarkedWrong string
	Expired       string
	Copied        string
	CopyFailed    string
}

var bundled = map[string]Strings{
	"fr": {
		Code:          "fr",
		EndTest:       "Terminer le test",
		EditMistakes:  "Modifier les fautes",
		ResetTest:     "Réinitialiser le test",
		Instructions:  "Cliquer sur le dernier mot lu pour afficher les résultats",
		ResultsTitle:  "Résultats :",
		ResultTime:    "Temps : %d secondes",
		ResultRead:    "Nombre de mots lus : %d",
		ResultWrong:   "Erreurs : %d",
		ResultScore:   "Score de fluence : %d",
		ChooseText:    "Veuillez choisir le texte que vous souhaitez utiliser pour le test (seuls les fichiers .txt sont autorisés) :",
		FilterLabel:   "Filtre : ",
		BuiltinText:   "texte intégré",
		Loading:       "Chargement…",
		NoTexts:       "Aucun texte trouvé.",
		MarkedWrong:   "« %s » marqué comme faute",
		UnmarkedWrong: "« %s » n'est plus une faute",
		Expired:       "Temps écoulé",
		Copied:        "Résultats copiés",
		CopyFailed:    "Copie impossible : %v",
	},
	"en": {
		Code:          "en",
		EndTest:       "End test",
		EditMistakes:  "Edit mistakes",
		ResetTest:     "Reset test",
		Instructions:  "Click the last word read to show the results",
		ResultsTitle:  "Results:",
		ResultTime:    "Time: %d seconds",
		ResultRead:    "Words read: %d",
		ResultWrong:   "Mistakes: %d",
		ResultScore:   "Fluency score: %d",
		ChooseText:    "Choose the text to use for the test (only .txt files are allowed):",
		FilterLabel:   "Filter: ",
		BuiltinText:   "built-in text",
		Loading:       "Loading…",
		NoTexts:       "No texts found.",
		MarkedWrong:   "%q marked as a mistake",
		UnmarkedWrong: "%q is no longer a mistake",
		Expired:       "Time is up",
		Copied:        "Results copied",
		CopyFailed:    "Copy failed: %v",
	},
}

// Lookup returns the strings for code.
func Lookup(code string) (Strings, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		code = Default
	}
	s, ok := bundled[code]
	if !ok {
		return Strings{}, fmt.Errorf("unknown language %q (available: %s)", code, strings.Join(Codes(), ", "))
	}
	return s, nil
}

// MustLookup is Lookup that falls back to the default language.
func MustLookup(code string) Strings {
	s, err := Lookup(code)
	if err != nil {
		return bundled[Default]
	}
	return s
}

// Codes lists the bundled language codes.
func Codes() []string {
	codes := make([]string, 0, len(bundled))
	for code := range bundled {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
