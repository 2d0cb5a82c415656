// Package verses is a static reference database of Gita verses keyed by the
// grounding labels the scoring components expose (principle IDs, rule
// references, module names). Lookup misses are absence, never errors.
package verses

import "math/rand"

// Verse is one reference record.
type Verse struct {
	ID          string   `json:"id"` // e.g. "BG 2.47"
	Chapter     int      `json:"chapter"`
	Number      int      `json:"verse"`
	Sanskrit    string   `json:"sanskrit"`
	Translation string   `json:"translation"`
	Principle   string   `json:"principle"`
	Modules     []string `json:"modules"`
}

// verses is the built-in table. Ordering is stable and insertion order is
// the iteration order for filtered retrieval.
var verses = []Verse{
	{
		ID: "BG 2.47", Chapter: 2, Number: 47,
		Sanskrit:    "karmaṇy evādhikāras te mā phaleṣu kadācana",
		Translation: "Your right is to action alone, never to its fruits.",
		Principle:   "vairagya",
		Modules:     []string{"principles", "reward"},
	},
	{
		ID: "BG 2.50", Chapter: 2, Number: 50,
		Sanskrit:    "yogaḥ karmasu kauśalam",
		Translation: "Yoga is skill in action.",
		Principle:   "viveka",
		Modules:     []string{"principles", "optimizer"},
	},
	{
		ID: "BG 3.19", Chapter: 3, Number: 19,
		Sanskrit:    "tasmād asaktaḥ satataṁ kāryaṁ karma samācara",
		Translation: "Therefore, without attachment, always do the work that must be done.",
		Principle:   "seva",
		Modules:     []string{"principles"},
	},
	{
		ID: "BG 3.35", Chapter: 3, Number: 35,
		Sanskrit:    "śreyān sva-dharmo viguṇaḥ para-dharmāt sv-anuṣṭhitāt",
		Translation: "Better one's own duty done imperfectly than another's done well.",
		Principle:   "svadharma",
		Modules:     []string{"boundary", "optimizer"},
	},
	{
		ID: "BG 2.48", Chapter: 2, Number: 48,
		Sanskrit:    "samatvaṁ yoga ucyate",
		Translation: "Evenness of mind is called yoga.",
		Principle:   "sthitaprajna",
		Modules:     []string{"optimizer", "audit"},
	},
	{
		ID: "BG 16.2", Chapter: 16, Number: 2,
		Sanskrit:    "ahiṁsā satyam akrodhas tyāgaḥ śāntir apaiśunam",
		Translation: "Non-violence, truthfulness, freedom from anger, renunciation, tranquillity.",
		Principle:   "ahimsa",
		Modules:     []string{"principles", "boundary"},
	},
	{
		ID: "BG 17.15", Chapter: 17, Number: 15,
		Sanskrit:    "anudvega-karaṁ vākyaṁ satyaṁ priya-hitaṁ ca yat",
		Translation: "Speech that causes no distress, truthful, pleasant and beneficial.",
		Principle:   "satya",
		Modules:     []string{"principles", "boundary"},
	},
	{
		ID: "BG 16.21", Chapter: 16, Number: 21,
		Sanskrit:    "tri-vidhaṁ narakasyedaṁ dvāraṁ nāśanam ātmanaḥ",
		Translation: "Three gates lead to self-destruction: desire, anger and greed.",
		Principle:   "asteya",
		Modules:     []string{"boundary"},
	},
	{
		ID: "BG 18.25", Chapter: 18, Number: 25,
		Sanskrit:    "anubandhaṁ kṣayaṁ hiṁsām anapekṣya ca pauruṣam",
		Translation: "Action begun in delusion, heedless of consequence, loss and injury, is tamasic.",
		Principle:   "reversibility",
		Modules:     []string{"boundary", "guna"},
	},
	{
		ID: "BG 14.6", Chapter: 14, Number: 6,
		Sanskrit:    "tatra sattvaṁ nirmalatvāt prakāśakam anāmayam",
		Translation: "Of these, sattva, being pure, illumines and frees from harm.",
		Principle:   "sattva",
		Modules:     []string{"guna"},
	},
	{
		ID: "BG 14.7", Chapter: 14, Number: 7,
		Sanskrit:    "rajo rāgātmakaṁ viddhi tṛṣṇā-saṅga-samudbhavam",
		Translation: "Know rajas to be of the nature of passion, born of craving and attachment.",
		Principle:   "rajas",
		Modules:     []string{"guna"},
	},
	{
		ID: "BG 14.8", Chapter: 14, Number: 8,
		Sanskrit:    "tamas tv ajñāna-jaṁ viddhi mohanaṁ sarva-dehinām",
		Translation: "Know tamas to be born of ignorance, deluding all embodied beings.",
		Principle:   "tamas",
		Modules:     []string{"guna"},
	},
	{
		ID: "BG 18.63", Chapter: 18, Number: 63,
		Sanskrit:    "vimṛśyaitad aśeṣeṇa yathecchasi tathā kuru",
		Translation: "Reflect on this fully, then act as you choose.",
		Principle:   "viveka",
		Modules:     []string{"audit"},
	},
}

// DB provides keyed and filtered retrieval over the verse table.
type DB struct {
	byID map[string]Verse
}

// NewDB builds the lookup index over the built-in table.
func NewDB() *DB {
	idx := make(map[string]Verse, len(verses))
	for _, v := range verses {
		idx[v.ID] = v
	}
	return &DB{byID: idx}
}

// Lookup returns the verse with the given ID. The second return is false on
// a miss.
func (db *DB) Lookup(id string) (Verse, bool) {
	v, ok := db.byID[id]
	return v, ok
}

// ByPrinciple returns every verse tagged with the principle, in table order.
func (db *DB) ByPrinciple(principle string) []Verse {
	var out []Verse
	for _, v := range verses {
		if v.Principle == principle {
			out = append(out, v)
		}
	}
	return out
}

// ByModule returns every verse grounding the named module, in table order.
func (db *DB) ByModule(module string) []Verse {
	var out []Verse
	for _, v := range verses {
		for _, m := range v.Modules {
			if m == module {
				out = append(out, v)
				break
			}
		}
	}
	return out
}

// All returns a copy of the full table.
func (db *DB) All() []Verse {
	out := make([]Verse, len(verses))
	copy(out, verses)
	return out
}

// Random returns one verse drawn from rng, for report decoration.
func (db *DB) Random(rng *rand.Rand) Verse {
	return verses[rng.Intn(len(verses))]
}
