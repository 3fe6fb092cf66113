package generator

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/lmodev/asaa_quiz/internal/models"
)

// FallbackSource serves a fixed pool of questions when no API key is
// configured or the remote generator is unavailable.
type FallbackSource struct {
	mu   sync.Mutex
	rand *rand.Rand
}

func NewFallbackSource() *FallbackSource {
	return &FallbackSource{rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (f *FallbackSource) Generate(_ context.Context, count int, _ string) ([]models.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pool := make([]models.Question, len(fallbackPool))
	copy(pool, fallbackPool)
	f.rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if count > len(pool) {
		count = len(pool)
	}
	return pool[:count], nil
}

var fallbackPool = []models.Question{
	{
		QuestionText:       "Quel est le premier pilier de l'Islam ?",
		Options:            []string{"La prière", "L'attestation de foi (Chahada)", "Le jeûne", "L'aumône"},
		CorrectAnswerIndex: 1,
		Explanation:        "L'attestation de foi (Chahada) est le premier pilier de l'Islam.",
		Difficulty:         models.DifficultyEasy,
		Source:             models.SourceManual,
	},
	{
		QuestionText:       "Combien y a-t-il de sourates dans le Coran ?",
		Options:            []string{"110", "114", "120", "100"},
		CorrectAnswerIndex: 1,
		Explanation:        "Le Coran contient 114 sourates.",
		Difficulty:         models.DifficultyEasy,
		Source:             models.SourceManual,
	},
	{
		QuestionText:       "Dans quelle ville le Prophète Muhammad (Sâw) est-il né ?",
		Options:            []string{"Médine", "Jérusalem", "La Mecque", "Taïf"},
		CorrectAnswerIndex: 2,
		Explanation:        "Le Prophète (Sâw) est né à La Mecque, l'année de l'Éléphant.",
		Difficulty:         models.DifficultyEasy,
		Source:             models.SourceManual,
	},
	{
		QuestionText:       "Quel ange a transmis la révélation au Prophète Muhammad (Sâw) ?",
		Options:            []string{"Mikaïl", "Israfil", "Jibril", "Azraïl"},
		CorrectAnswerIndex: 2,
		Explanation:        "L'ange Jibril (Gabriel) est chargé de transmettre la révélation.",
		Difficulty:         models.DifficultyEasy,
		Source:             models.SourceManual,
	},
	{
		QuestionText:       "Quelle est la première bataille majeure de l'Islam ?",
		Options:            []string{"Uhud", "Badr", "Khandaq", "Tabuk"},
		CorrectAnswerIndex: 1,
		Explanation:        "La bataille de Badr eut lieu en l'an 2 de l'Hégire.",
		Difficulty:         models.DifficultyMedium,
		Source:             models.SourceManual,
	},
	{
		QuestionText:       "Qui fut le premier Calife après le Prophète (Sâw) ?",
		Options:            []string{"Umar ibn al-Khattab", "Ali ibn Abi Talib", "Uthman ibn Affan", "Abu Bakr as-Siddiq"},
		CorrectAnswerIndex: 3,
		Explanation:        "Abu Bakr as-Siddiq fut élu premier Calife à la mort du Prophète (Sâw).",
		Difficulty:         models.DifficultyMedium,
		Source:             models.SourceManual,
	},
	{
		QuestionText:       "Quelle sourate est appelée « le cœur du Coran » ?",
		Options:            []string{"Al-Fatiha", "Ya-Sin", "Al-Ikhlas", "Al-Baqara"},
		CorrectAnswerIndex: 1,
		Explanation:        "La sourate Ya-Sin est traditionnellement appelée le cœur du Coran.",
		Difficulty:         models.DifficultyMedium,
		Source:             models.SourceManual,
	},
	{
		QuestionText:       "Combien de temps a duré la révélation du Coran ?",
		Options:            []string{"10 ans", "15 ans", "23 ans", "40 ans"},
		CorrectAnswerIndex: 2,
		Explanation:        "La révélation s'est étalée sur environ 23 ans, entre La Mecque et Médine.",
		Difficulty:         models.DifficultyMedium,
		Source:             models.SourceManual,
	},
	{
		QuestionText:       "Quelle épouse du Prophète (Sâw) était surnommée « la Mère des Pauvres » ?",
		Options:            []string{"Aisha", "Khadija", "Zaynab bint Khuzayma", "Hafsa"},
		CorrectAnswerIndex: 2,
		Explanation:        "Zaynab bint Khuzayma était surnommée Umm al-Masakin pour sa générosité.",
		Difficulty:         models.DifficultyHard,
		Source:             models.SourceManual,
	},
	{
		QuestionText:       "En quelle année de l'Hégire eut lieu le traité de Hudaybiyya ?",
		Options:            []string{"L'an 4", "L'an 6", "L'an 8", "L'an 10"},
		CorrectAnswerIndex: 1,
		Explanation:        "Le traité de Hudaybiyya fut conclu en l'an 6 de l'Hégire.",
		Difficulty:         models.DifficultyHard,
		Source:             models.SourceManual,
	},
	{
		QuestionText:       "Quel compagnon fut surnommé « l'épée d'Allah dégainée » ?",
		Options:            []string{"Hamza ibn Abd al-Muttalib", "Khalid ibn al-Walid", "Saad ibn Abi Waqqas", "Zubayr ibn al-Awwam"},
		CorrectAnswerIndex: 1,
		Explanation:        "Khalid ibn al-Walid reçut ce surnom du Prophète (Sâw) lui-même.",
		Difficulty:         models.DifficultyHard,
		Source:             models.SourceManual,
	},
	{
		QuestionText:       "Quel savant a compilé le recueil de hadiths considéré comme le plus authentique ?",
		Options:            []string{"Muslim", "At-Tirmidhi", "Al-Bukhari", "Abu Dawud"},
		CorrectAnswerIndex: 2,
		Explanation:        "Le Sahih d'Al-Bukhari est considéré comme le recueil le plus authentique.",
		Difficulty:         models.DifficultyExpert,
		Source:             models.SourceManual,
	},
}
