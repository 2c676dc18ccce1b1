package sheet

import "github.com/ByLCY/omrkit/numeral"

// labels holds every fixed string printed on a sheet.
type labels struct {
	doNotMark       string
	title           string
	question        string
	answer          string
	roll            string
	subjectCode     string
	class           string
	setCode         string
	questionSetCode string
	rules           string
	signature       []string
	candidateInfo   string
	examTypes       []string
	defaultRules    string

	name, rollLine, classLine, subject, group, paper, section, date, subjectCodeLine string
}

var bengaliLabels = labels{
	doNotMark:       "এই বক্সে কোনো দাগ দেয়া যাবে না।",
	title:           "বহুনির্বাচনি অভিক্ষার উত্তরপত্র",
	question:        "প্রশ্ন",
	answer:          "উত্তর",
	roll:            "রোল নম্বর",
	subjectCode:     "বিষয় কোড",
	class:           "শ্রেণি",
	setCode:         "সেট কোড",
	questionSetCode: "প্রশ্নের সেট কোড",
	rules:           "নিয়মাবলী",
	signature:       []string{"কক্ষ পরিদর্শকের স্বাক্ষর", "তারিখসহ"},
	candidateInfo:   "পরীক্ষার্থীর তথ্য",
	examTypes:       []string{"অর্ধ-বার্ষিক পরীক্ষা", "বার্ষিক পরীক্ষা", "মডেল টেস্ট পরীক্ষা", "..................... পরীক্ষা"},
	defaultRules: `1. বৃত্তাকার ঘরগুলো এমন ভাবে ভরাট করতে হবে যাতে ভেতরের লেখাটি দেখা না যায়।
2. উত্তরপত্রে অবাঞ্চিত দাগ দেয়া যাবেনা।
3. উত্তরপত্র ভাজ করা যাবেনা।
4. সেট কোডবিহীন উত্তরপত্র বাতিল হবে।`,
	name:            "নাম:",
	rollLine:        "রোল:",
	classLine:       "শ্রেণি:",
	subject:         "বিষয়:",
	group:           "বিভাগ:",
	paper:           "পত্র:",
	section:         "সেকশন:",
	date:            "তারিখ:",
	subjectCodeLine: "বিষয় কোড:",
}

var latinLabels = labels{
	doNotMark:       "Do not mark inside this box.",
	title:           "Multiple Choice Answer Sheet",
	question:        "Q.",
	answer:          "Answer",
	roll:            "Roll No.",
	subjectCode:     "Subject Code",
	class:           "Class",
	setCode:         "Set Code",
	questionSetCode: "Question Set Code",
	rules:           "Instructions",
	signature:       []string{"Invigilator's signature", "with date"},
	candidateInfo:   "Candidate Information",
	examTypes:       []string{"Half-yearly exam", "Annual exam", "Model test", "..................... exam"},
	defaultRules: `1. Fill the circles completely so the letter inside cannot be seen.
2. Do not make stray marks on the answer sheet.
3. Do not fold the answer sheet.
4. Sheets without a set code will be rejected.`,
	name:            "Name:",
	rollLine:        "Roll:",
	classLine:       "Class:",
	subject:         "Subject:",
	group:           "Group:",
	paper:           "Paper:",
	section:         "Section:",
	date:            "Date:",
	subjectCodeLine: "Subject code:",
}

func localeFor(s numeral.System) labels {
	if s == numeral.Latin {
		return latinLabels
	}
	return bengaliLabels
}

// ruleMarker returns the numbering printed before rule i (0-based).
func ruleMarker(i int, s numeral.System) string {
	if s == numeral.Latin {
		return numeral.Format(i+1, s) + ". "
	}
	return numeral.Format(i+1, s) + "। "
}
