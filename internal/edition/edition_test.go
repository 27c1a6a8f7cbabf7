package edition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	e, err := Lookup(KSU)
	require.NoError(t, err)
	assert.Equal(t, 604, e.PageCount())
	assert.True(t, e.Canonical())

	_, err = Lookup("nope")
	assert.ErrorIs(t, err, ErrUnknownEdition)
}

func TestLookupOrDefault(t *testing.T) {
	e, ok := LookupOrDefault(Warsh)
	assert.True(t, ok)
	assert.Equal(t, Warsh, e.ID)

	e, ok = LookupOrDefault("retired-edition")
	assert.False(t, ok)
	assert.Equal(t, Default, e.ID)
}

func TestRegistryIsWellFormed(t *testing.T) {
	seen := map[ID]bool{}
	for _, e := range All() {
		assert.False(t, seen[e.ID], "duplicate id %s", e.ID)
		seen[e.ID] = true
		assert.LessOrEqual(t, e.StartPage, e.EndPage, "%s", e.ID)
		assert.NotEmpty(t, e.Addressing.BaseURL, "%s", e.ID)
		assert.NotEmpty(t, e.Addressing.Extension, "%s", e.ID)
	}
	assert.True(t, seen[Default])
	assert.Len(t, seen, 14)
}

func TestOnlyMadinahLayoutsAreCanonical(t *testing.T) {
	for _, e := range All() {
		if e.Canonical() {
			assert.Equal(t, 604, e.PageCount(), "%s", e.ID)
		}
	}
	warsh, _ := Lookup(Warsh)
	assert.False(t, warsh.Canonical())
	medina, _ := Lookup(Medina)
	assert.False(t, medina.Canonical())
}

func TestClampPage(t *testing.T) {
	nabawiya, _ := Lookup(MedinaNabawiya)

	assert.Equal(t, 4, ClampPage(nabawiya, 1))
	assert.Equal(t, 638, ClampPage(nabawiya, 1000))
	assert.Equal(t, 100, ClampPage(nabawiya, 100))

	for _, e := range All() {
		for _, x := range []int{-10, 0, 1, 3, 4, 300, 563, 564, 604, 605, 638, 639, 5000} {
			once := ClampPage(e, x)
			assert.Equal(t, once, ClampPage(e, once), "%s page %d", e.ID, x)
			assert.True(t, e.Contains(once))
		}
	}
}

func TestImageURL(t *testing.T) {
	cases := []struct {
		id   ID
		page int
		want string
	}{
		{Medina, 7, "https://app.quranflash.com/book/Medina1/epub/EPUB/imgs/0007.gif"},
		{KSU, 7, "https://quran.ksu.edu.sa/ayat/safahat1/7.png"},
		{Tajweed, 42, "https://app.quranflash.com/book/Tajweed/epub/EPUB/imgs/042.png"},
		{Tajweed, 604, "https://app.quranflash.com/book/Tajweed/epub/EPUB/imgs/604.png"},
		{MedinaNabawiya, 12, "https://www.mp3quran.net/mushaf2/12.jpg"},
	}
	for _, tc := range cases {
		e, err := Lookup(tc.id)
		require.NoError(t, err)
		assert.Equal(t, tc.want, ImageURL(e, tc.page))
	}

	tadabbur, _ := Lookup(Tadabbur)
	assert.Contains(t, ImageURL(tadabbur, 3), "_0003.jp2&id=")
}
