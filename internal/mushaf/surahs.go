package mushaf

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/gosimple/slug"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Surah is one of the 114 chapters.
type Surah struct {
	Number     int    `json:"number"`
	Name       string `json:"name"`
	NameArabic string `json:"name_arabic"`
	StartPage  int    `json:"start_page"`
}

var surahNames = [SurahCount][2]string{
	{"Al-Fatiha", "الفاتحة"},
	{"Al-Baqarah", "البقرة"},
	{"Aal-Imran", "آل عمران"},
	{"An-Nisa", "النساء"},
	{"Al-Maidah", "المائدة"},
	{"Al-Anam", "الأنعام"},
	{"Al-Araf", "الأعراف"},
	{"Al-Anfal", "الأنفال"},
	{"At-Tawbah", "التوبة"},
	{"Yunus", "يونس"},
	{"Hud", "هود"},
	{"Yusuf", "يوسف"},
	{"Ar-Rad", "الرعد"},
	{"Ibrahim", "إبراهيم"},
	{"Al-Hijr", "الحجر"},
	{"An-Nahl", "النحل"},
	{"Al-Isra", "الإسراء"},
	{"Al-Kahf", "الكهف"},
	{"Maryam", "مريم"},
	{"Ta-Ha", "طه"},
	{"Al-Anbiya", "الأنبياء"},
	{"Al-Hajj", "الحج"},
	{"Al-Muminun", "المؤمنون"},
	{"An-Nur", "النور"},
	{"Al-Furqan", "الفرقان"},
	{"Ash-Shuara", "الشعراء"},
	{"An-Naml", "النمل"},
	{"Al-Qasas", "القصص"},
	{"Al-Ankabut", "العنكبوت"},
	{"Ar-Rum", "الروم"},
	{"Luqman", "لقمان"},
	{"As-Sajdah", "السجدة"},
	{"Al-Ahzab", "الأحزاب"},
	{"Saba", "سبأ"},
	{"Fatir", "فاطر"},
	{"Ya-Sin", "يس"},
	{"As-Saffat", "الصافات"},
	{"Sad", "ص"},
	{"Az-Zumar", "الزمر"},
	{"Ghafir", "غافر"},
	{"Fussilat", "فصلت"},
	{"Ash-Shura", "الشورى"},
	{"Az-Zukhruf", "الزخرف"},
	{"Ad-Dukhan", "الدخان"},
	{"Al-Jathiyah", "الجاثية"},
	{"Al-Ahqaf", "الأحقاف"},
	{"Muhammad", "محمد"},
	{"Al-Fath", "الفتح"},
	{"Al-Hujurat", "الحجرات"},
	{"Qaf", "ق"},
	{"Adh-Dhariyat", "الذاريات"},
	{"At-Tur", "الطور"},
	{"An-Najm", "النجم"},
	{"Al-Qamar", "القمر"},
	{"Ar-Rahman", "الرحمن"},
	{"Al-Waqiah", "الواقعة"},
	{"Al-Hadid", "الحديد"},
	{"Al-Mujadila", "المجادلة"},
	{"Al-Hashr", "الحشر"},
	{"Al-Mumtahanah", "الممتحنة"},
	{"As-Saff", "الصف"},
	{"Al-Jumuah", "الجمعة"},
	{"Al-Munafiqun", "المنافقون"},
	{"At-Taghabun", "التغابن"},
	{"At-Talaq", "الطلاق"},
	{"At-Tahrim", "التحريم"},
	{"Al-Mulk", "الملك"},
	{"Al-Qalam", "القلم"},
	{"Al-Haqqah", "الحاقة"},
	{"Al-Maarij", "المعارج"},
	{"Nuh", "نوح"},
	{"Al-Jinn", "الجن"},
	{"Al-Muzzammil", "المزمل"},
	{"Al-Muddaththir", "المدثر"},
	{"Al-Qiyamah", "القيامة"},
	{"Al-Insan", "الإنسان"},
	{"Al-Mursalat", "المرسلات"},
	{"An-Naba", "النبأ"},
	{"An-Naziat", "النازعات"},
	{"Abasa", "عبس"},
	{"At-Takwir", "التكوير"},
	{"Al-Infitar", "الانفطار"},
	{"Al-Mutaffifin", "المطففين"},
	{"Al-Inshiqaq", "الانشقاق"},
	{"Al-Buruj", "البروج"},
	{"At-Tariq", "الطارق"},
	{"Al-Ala", "الأعلى"},
	{"Al-Ghashiyah", "الغاشية"},
	{"Al-Fajr", "الفجر"},
	{"Al-Balad", "البلد"},
	{"Ash-Shams", "الشمس"},
	{"Al-Layl", "الليل"},
	{"Ad-Duhaa", "الضحى"},
	{"Ash-Sharh", "الشرح"},
	{"At-Tin", "التين"},
	{"Al-Alaq", "العلق"},
	{"Al-Qadr", "القدر"},
	{"Al-Bayyinah", "البينة"},
	{"Az-Zalzalah", "الزلزلة"},
	{"Al-Adiyat", "العاديات"},
	{"Al-Qariah", "القارعة"},
	{"At-Takathur", "التكاثر"},
	{"Al-Asr", "العصر"},
	{"Al-Humazah", "الهمزة"},
	{"Al-Fil", "الفيل"},
	{"Quraysh", "قريش"},
	{"Al-Maun", "الماعون"},
	{"Al-Kawthar", "الكوثر"},
	{"Al-Kafirun", "الكافرون"},
	{"An-Nasr", "النصر"},
	{"Al-Masad", "المسد"},
	{"Al-Ikhlas", "الإخلاص"},
	{"Al-Falaq", "الفلق"},
	{"An-Nas", "الناس"},
}

var surahSlugs [SurahCount]string

func init() {
	for i, names := range surahNames {
		surahSlugs[i] = slug.Make(names[0])
	}
}

// SurahByNumber returns the catalog entry for surah n.
func SurahByNumber(n int) (Surah, error) {
	if n < 1 || n > SurahCount {
		return Surah{}, fmt.Errorf("surah %d: %w", n, ErrOutOfRange)
	}
	return surahAt(n - 1), nil
}

// Surahs returns the full catalog in mushaf order.
func Surahs() []Surah {
	out := make([]Surah, SurahCount)
	for i := range out {
		out[i] = surahAt(i)
	}
	return out
}

// Slug is the URL-safe key of a surah name, e.g. "al-baqarah".
func (s Surah) Slug() string {
	return surahSlugs[s.Number-1]
}

func surahAt(i int) Surah {
	return Surah{
		Number:     i + 1,
		Name:       surahNames[i][0],
		NameArabic: surahNames[i][1],
		StartPage:  surahStarts[i],
	}
}

// SearchSurahs matches a query against surah numbers, transliterated names
// and Arabic names. Arabic matching ignores tashkeel and hamza seats.
func SearchSurahs(query string) []Surah {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	if n, err := strconv.Atoi(query); err == nil {
		if s, err := SurahByNumber(n); err == nil {
			return []Surah{s}
		}
		return nil
	}

	var wantSlug, wantArabic string
	if strings.IndexFunc(query, isArabicLetter) >= 0 {
		wantArabic = normalizeArabic(query)
	} else {
		wantSlug = slug.Make(query)
	}

	var out []Surah
	for i := range surahNames {
		if wantSlug != "" && strings.Contains(surahSlugs[i], wantSlug) {
			out = append(out, surahAt(i))
			continue
		}
		if wantArabic != "" && strings.Contains(normalizeArabic(surahNames[i][1]), wantArabic) {
			out = append(out, surahAt(i))
		}
	}
	return out
}

func isArabicLetter(r rune) bool {
	return unicode.Is(unicode.Arabic, r)
}

// transformers carry state, so the chain is built per call
func normalizeArabic(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return strings.TrimSpace(out)
}
