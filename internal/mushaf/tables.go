package mushaf

// Canonical page tables for the 604-page Madinah print. Index i holds the
// start page of division i+1.

const (
	FirstPage = 1
	LastPage  = 604

	SurahCount   = 114
	JuzCount     = 30
	HizbCount    = 60
	QuarterCount = 240
)

// QuartersApproximate marks the rub' table as pattern-derived rather than
// verified against a printed mushaf.
const QuartersApproximate = true

var surahStarts = [SurahCount]int{
	1, 2, 50, 77, 106, 128, 151, 177, 187, 208,
	221, 235, 249, 255, 262, 267, 282, 293, 305, 312,
	322, 332, 342, 350, 359, 367, 377, 385, 396, 404,
	411, 415, 418, 428, 434, 440, 446, 453, 458, 467,
	477, 483, 489, 496, 499, 502, 507, 511, 515, 518,
	520, 523, 526, 528, 531, 534, 537, 542, 545, 549,
	551, 553, 554, 556, 558, 560, 562, 564, 566, 568,
	570, 572, 574, 575, 577, 578, 580, 582, 583, 585,
	586, 587, 587, 589, 590, 591, 591, 592, 593, 594,
	595, 595, 596, 596, 597, 597, 598, 598, 599, 599,
	600, 600, 601, 601, 601, 602, 602, 602, 603, 603,
	603, 604, 604, 604,
}

var juzStarts = [JuzCount]int{
	1, 22, 42, 62, 82, 102, 121, 142, 162, 182,
	201, 222, 242, 262, 282, 302, 322, 342, 362, 382,
	402, 422, 442, 462, 482, 502, 522, 542, 562, 582,
}

var hizbStarts = [HizbCount]int{
	1, 12, 22, 32, 42, 52, 62, 72, 82, 92,
	102, 112, 122, 132, 142, 152, 162, 173, 182, 192,
	202, 212, 222, 232, 242, 252, 262, 272, 282, 292,
	302, 312, 322, 332, 342, 352, 362, 372, 382, 392,
	402, 413, 422, 432, 442, 452, 462, 472, 482, 492,
	502, 513, 522, 532, 542, 553, 562, 572, 582, 592,
}

// one row per hizb
var quarterStarts = [QuarterCount]int{
	1, 4, 7, 10,
	12, 15, 18, 20,
	22, 25, 27, 30,
	32, 35, 37, 40,
	42, 45, 47, 50,
	52, 55, 57, 60,
	62, 65, 67, 70,
	72, 75, 77, 80,
	82, 85, 87, 90,
	92, 95, 97, 100,
	102, 105, 107, 110,
	112, 115, 117, 120,
	122, 125, 127, 130,
	132, 135, 137, 140,
	142, 145, 147, 150,
	152, 155, 158, 160,
	162, 165, 168, 170,
	173, 175, 178, 180,
	182, 185, 187, 190,
	192, 195, 197, 200,
	202, 205, 207, 210,
	212, 215, 217, 220,
	222, 225, 227, 230,
	232, 235, 237, 240,
	242, 245, 247, 250,
	252, 255, 257, 260,
	262, 265, 267, 270,
	272, 275, 277, 280,
	282, 285, 287, 290,
	292, 295, 297, 300,
	302, 305, 307, 310,
	312, 315, 317, 320,
	322, 325, 327, 330,
	332, 335, 337, 340,
	342, 345, 347, 350,
	352, 355, 357, 360,
	362, 365, 367, 370,
	372, 375, 377, 380,
	382, 385, 387, 390,
	392, 395, 397, 400,
	402, 405, 408, 410,
	413, 415, 418, 420,
	422, 425, 427, 430,
	432, 435, 437, 440,
	442, 445, 447, 450,
	452, 455, 457, 460,
	462, 465, 467, 470,
	472, 475, 477, 480,
	482, 485, 487, 490,
	492, 495, 498, 500,
	502, 505, 508, 510,
	513, 515, 518, 520,
	522, 525, 527, 530,
	532, 535, 537, 540,
	542, 545, 548, 550,
	553, 555, 558, 560,
	562, 565, 567, 570,
	572, 575, 577, 580,
	582, 585, 587, 590,
	592, 595, 597, 600,
}

// Sajda is a verse at which prostration is prescribed.
type Sajda struct {
	Surah int `json:"surah"`
	Ayah  int `json:"ayah"`
	Page  int `json:"page"`
}

var sajdas = [...]Sajda{
	{Surah: 7, Ayah: 206, Page: 176},
	{Surah: 13, Ayah: 15, Page: 252},
	{Surah: 16, Ayah: 50, Page: 272},
	{Surah: 17, Ayah: 109, Page: 293},
	{Surah: 19, Ayah: 58, Page: 309},
	{Surah: 22, Ayah: 18, Page: 334},
	{Surah: 22, Ayah: 77, Page: 341},
	{Surah: 25, Ayah: 60, Page: 365},
	{Surah: 27, Ayah: 26, Page: 379},
	{Surah: 32, Ayah: 15, Page: 416},
	{Surah: 38, Ayah: 24, Page: 454},
	{Surah: 41, Ayah: 38, Page: 480},
	{Surah: 53, Ayah: 62, Page: 528},
	{Surah: 84, Ayah: 21, Page: 589},
	{Surah: 96, Ayah: 19, Page: 597},
}

// Sajdas returns the fixed list of sajda positions in mushaf order.
func Sajdas() []Sajda {
	out := make([]Sajda, len(sajdas))
	copy(out, sajdas[:])
	return out
}
