package edition

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Nixie-Tech-LLC/rafiq/internal/mushaf"
)

// ErrUnknownEdition is returned when an id is not in the registry.
var ErrUnknownEdition = errors.New("edition: unknown edition")

// ID is the persisted key of an edition.
type ID string

const (
	Medina         ID = "medina"
	Tadabbur       ID = "tadabbur"
	KSU            ID = "ksu"
	Tajweed        ID = "tajweed"
	MedinaOld      ID = "medinaOld"
	Jawami         ID = "jawami"
	Tahajod        ID = "tahajod"
	Shubah         ID = "shubah"
	Shamarly       ID = "shamarly"
	Muallim        ID = "muallim"
	Douri          ID = "douri"
	MedinaNabawiya ID = "medinaNabawiya"
	Qaloon         ID = "qaloon"
	Warsh          ID = "warsh"
)

// Default is used when a persisted id no longer resolves.
const Default = Medina

// Layout tells whether an edition paginates like the canonical 604-page
// Madinah print, which is what the surah/juz/hizb tables describe.
type Layout int

const (
	LayoutOther Layout = iota
	LayoutMadinah604
)

func (l Layout) String() string {
	if l == LayoutMadinah604 {
		return "madinah604"
	}
	return "other"
}

// Addressing describes how page images are named on the edition's host.
type Addressing struct {
	BaseURL   string
	PadWidth  int
	Extension string
}

// Edition is an immutable description of one printed mushaf.
type Edition struct {
	ID         ID
	Name       string
	NameArabic string
	Rewayah    string
	StartPage  int
	EndPage    int
	Addressing Addressing
	Layout     Layout
}

const quranFlash = "https://app.quranflash.com/book/"

var registry = [...]Edition{
	{
		ID: Medina, Name: "Medina Mushaf", NameArabic: "مصحف المدينة المنورة", Rewayah: "hafs",
		StartPage: 1, EndPage: 606,
		Addressing: Addressing{BaseURL: quranFlash + "Medina1/epub/EPUB/imgs/", PadWidth: 4, Extension: "gif"},
	},
	{
		ID: Tadabbur, Name: "Quran Tadabbur wa Amal", NameArabic: "القرآن تدبر وعمل", Rewayah: "hafs",
		StartPage: 1, EndPage: 616,
		Addressing: Addressing{
			BaseURL: "https://ia902900.us.archive.org/BookReader/BookReaderImages.php?zip=/23/items/20200310_20200310_1532/" +
				"%D8%A7%D9%84%D9%82%D8%B1%D8%A2%D9%86%20%D8%AA%D8%AF%D8%A8%D8%B1%20%D9%88%D8%B9%D9%85%D9%84_jp2.zip" +
				"&file=%D8%A7%D9%84%D9%82%D8%B1%D8%A2%D9%86%20%D8%AA%D8%AF%D8%A8%D8%B1%20%D9%88%D8%B9%D9%85%D9%84_jp2/" +
				"%D8%A7%D9%84%D9%82%D8%B1%D8%A2%D9%86%20%D8%AA%D8%AF%D8%A8%D8%B1%20%D9%88%D8%B9%D9%85%D9%84_",
			PadWidth:  4,
			Extension: "jp2&id=20200310_20200310_1532&scale=4&rotate=0",
		},
	},
	{
		ID: KSU, Name: "King Saud University", NameArabic: "مصحف جامعة الملك سعود", Rewayah: "hafs",
		StartPage: 1, EndPage: 604,
		Addressing: Addressing{BaseURL: "https://quran.ksu.edu.sa/ayat/safahat1/", Extension: "png"},
		Layout:     LayoutMadinah604,
	},
	{
		ID: Tajweed, Name: "Tajweed Mushaf", NameArabic: "مصحف التجويد", Rewayah: "hafs",
		StartPage: 1, EndPage: 604,
		Addressing: Addressing{BaseURL: quranFlash + "Tajweed/epub/EPUB/imgs/", PadWidth: 3, Extension: "png"},
		Layout:     LayoutMadinah604,
	},
	{
		ID: MedinaOld, Name: "Old Medina Mushaf", NameArabic: "مصحف المدينة القديم", Rewayah: "hafs",
		StartPage: 1, EndPage: 607,
		Addressing: Addressing{BaseURL: quranFlash + "MedinaOld/epub/EPUB/imgs/", PadWidth: 4, Extension: "png"},
	},
	{
		ID: Jawami, Name: "Jawami Mushaf", NameArabic: "مصحف الجوامعي", Rewayah: "hafs",
		StartPage: 1, EndPage: 607,
		Addressing: Addressing{BaseURL: quranFlash + "Medina3/epub/EPUB/imgs/", PadWidth: 4, Extension: "png"},
	},
	{
		ID: Tahajod, Name: "Tahajod Mushaf", NameArabic: "مصحف التهجد", Rewayah: "hafs",
		StartPage: 1, EndPage: 246,
		Addressing: Addressing{BaseURL: quranFlash + "Tahajod/epub/EPUB/imgs/", PadWidth: 3, Extension: "png"},
	},
	{
		ID: Shubah, Name: "Shubah Mushaf", NameArabic: "مصحف رواية شعبة", Rewayah: "shubah",
		StartPage: 1, EndPage: 607,
		Addressing: Addressing{BaseURL: quranFlash + "Shubah/epub/EPUB/imgs/", PadWidth: 4, Extension: "png"},
	},
	{
		ID: Shamarly, Name: "Shamarly Mushaf", NameArabic: "مصحف الشمرلي", Rewayah: "hafs",
		StartPage: 1, EndPage: 523,
		Addressing: Addressing{BaseURL: quranFlash + "Shamarly/epub/EPUB/imgs/", PadWidth: 4, Extension: "png"},
	},
	{
		ID: Muallim, Name: "Muallim Mushaf", NameArabic: "المصحف المعلم", Rewayah: "hafs",
		StartPage: 1, EndPage: 606,
		Addressing: Addressing{BaseURL: quranFlash + "Warsh2/epub/EPUB/imgs/", PadWidth: 3, Extension: "png"},
	},
	{
		ID: Douri, Name: "Douri Mushaf", NameArabic: "مصحف رواية الدوري", Rewayah: "douri",
		StartPage: 1, EndPage: 525,
		Addressing: Addressing{BaseURL: quranFlash + "Douri/epub/EPUB/imgs/", PadWidth: 4, Extension: "png"},
	},
	{
		ID: MedinaNabawiya, Name: "Medina Nabawiya Mushaf", NameArabic: "مصحف المدينة النبوية", Rewayah: "hafs",
		StartPage: 4, EndPage: 638,
		Addressing: Addressing{BaseURL: "https://www.mp3quran.net/mushaf2/", Extension: "jpg"},
	},
	{
		ID: Qaloon, Name: "Qaloon Mushaf", NameArabic: "مصحف قالون", Rewayah: "qaloon",
		StartPage: 1, EndPage: 563,
		Addressing: Addressing{BaseURL: quranFlash + "Qaloon/epub/EPUB/imgs/", PadWidth: 4, Extension: "png"},
	},
	{
		ID: Warsh, Name: "Warsh Mushaf", NameArabic: "مصحف ورش", Rewayah: "warsh",
		StartPage: 1, EndPage: 563,
		Addressing: Addressing{BaseURL: quranFlash + "Warsh1/epub/EPUB/imgs/", PadWidth: 4, Extension: "png"},
	},
}

// All returns the registry in display order.
func All() []Edition {
	out := make([]Edition, len(registry))
	copy(out, registry[:])
	return out
}

// Lookup finds an edition by id.
func Lookup(id ID) (Edition, error) {
	for _, e := range registry {
		if e.ID == id {
			return e, nil
		}
	}
	return Edition{}, fmt.Errorf("%w: %q", ErrUnknownEdition, id)
}

// LookupOrDefault is for restoring persisted state, where a stale id must not
// prevent the reader from opening.
func LookupOrDefault(id ID) (Edition, bool) {
	if e, err := Lookup(id); err == nil {
		return e, true
	}
	e, _ := Lookup(Default)
	return e, false
}

func (e Edition) PageCount() int {
	return e.EndPage - e.StartPage + 1
}

func (e Edition) Contains(page int) bool {
	return page >= e.StartPage && page <= e.EndPage
}

// Canonical reports whether the mushaf tables apply to this edition's pages.
func (e Edition) Canonical() bool {
	return e.Layout == LayoutMadinah604 &&
		e.StartPage == mushaf.FirstPage && e.EndPage == mushaf.LastPage
}

// ClampPage pins page into the edition bounds.
func ClampPage(e Edition, page int) int {
	if page < e.StartPage {
		return e.StartPage
	}
	if page > e.EndPage {
		return e.EndPage
	}
	return page
}

// ImageURL builds the page image address. No request is made.
func ImageURL(e Edition, page int) string {
	a := e.Addressing
	num := strconv.Itoa(page)
	if a.PadWidth > len(num) {
		num = strings.Repeat("0", a.PadWidth-len(num)) + num
	}
	return a.BaseURL + num + "." + a.Extension
}
