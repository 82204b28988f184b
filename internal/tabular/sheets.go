package tabular

import (
	"github.com/heartmarshall/abaevdict/internal/domain"
)

// sheet describes the CSV layout of one table.
type sheet[T domain.Record] struct {
	name   string
	header []string
	encode func(c codec, r T) []string
	decode func(c codec, rec []string) (T, error)
	// check validates a row before anything is written. Optional.
	check func(c codec, r T) error
}

// File returns the CSV file name of a table.
func File(table string) string { return table + ".csv" }

var entrySheet = sheet[domain.Entry]{
	name:   domain.TableEntries,
	header: []string{"db_id", "lemma", "lang", "num", "main_entry"},
	encode: func(_ codec, e domain.Entry) []string {
		return []string{e.ID, e.Lemma, opt(e.Lang), optInt(e.Num), opt(e.MainEntry)}
	},
	decode: func(_ codec, rec []string) (domain.Entry, error) {
		num, err := parseOptInt("num", rec[3])
		if err != nil {
			return domain.Entry{}, err
		}
		return domain.Entry{
			ID:        rec[0],
			Lemma:     rec[1],
			Lang:      domain.StrPtr(rec[2]),
			Num:       num,
			MainEntry: domain.StrPtr(rec[4]),
		}, nil
	},
}

var formSheet = sheet[domain.Form]{
	name:   domain.TableForms,
	header: []string{"db_id", "entry_id", "orth", "lang", "rel_of", "rel_type"},
	encode: func(_ codec, f domain.Form) []string {
		rel := ""
		if f.RelType != nil {
			rel = f.RelType.String()
		}
		return []string{f.ID, f.EntryID, f.Orth, opt(f.Lang), opt(f.RelOf), rel}
	},
	decode: func(_ codec, rec []string) (domain.Form, error) {
		rel, err := parseRelType(rec[5])
		if err != nil {
			return domain.Form{}, err
		}
		f := domain.Form{
			ID:      rec[0],
			EntryID: rec[1],
			Orth:    rec[2],
			Lang:    domain.StrPtr(rec[3]),
			RelOf:   domain.StrPtr(rec[4]),
			RelType: rel,
		}
		return f, f.Validate()
	},
}

var senseSheet = sheet[domain.Sense]{
	name:   domain.TableSenses,
	header: []string{"db_id", "entry_id", "description_ru", "description_en", "lang", "is_def", "sense_group", "num"},
	encode: func(_ codec, s domain.Sense) []string {
		return []string{s.ID, s.EntryID, s.DescriptionRu, s.DescriptionEn, opt(s.Lang),
			boolCell(s.IsDef), opt(s.SenseGroup), optInt(s.Num)}
	},
	decode: func(_ codec, rec []string) (domain.Sense, error) {
		isDef, err := parseBool("is_def", rec[5])
		if err != nil {
			return domain.Sense{}, err
		}
		num, err := parseOptInt("num", rec[7])
		if err != nil {
			return domain.Sense{}, err
		}
		return domain.Sense{
			ID:            rec[0],
			EntryID:       rec[1],
			DescriptionRu: rec[2],
			DescriptionEn: rec[3],
			Lang:          domain.StrPtr(rec[4]),
			IsDef:         isDef,
			SenseGroup:    domain.StrPtr(rec[6]),
			Num:           num,
		}, nil
	},
}

var senseGroupSheet = sheet[domain.SenseGroup]{
	name:   domain.TableSenseGroups,
	header: []string{"db_id", "entry_id", "num"},
	encode: func(_ codec, g domain.SenseGroup) []string {
		return []string{g.ID, g.EntryID, optInt(g.Num)}
	},
	decode: func(_ codec, rec []string) (domain.SenseGroup, error) {
		num, err := parseOptInt("num", rec[2])
		if err != nil {
			return domain.SenseGroup{}, err
		}
		return domain.SenseGroup{ID: rec[0], EntryID: rec[1], Num: num}, nil
	},
}

var exampleSheet = sheet[domain.Example]{
	name:   domain.TableExamples,
	header: []string{"db_id", "entry_id", "example_group", "text", "tr_ru", "tr_en", "num", "lang"},
	encode: func(_ codec, e domain.Example) []string {
		return []string{e.ID, e.EntryID, e.ExampleGroup, e.Text, opt(e.TrRu), opt(e.TrEn),
			optInt(e.Num), opt(e.Lang)}
	},
	decode: func(_ codec, rec []string) (domain.Example, error) {
		num, err := parseOptInt("num", rec[6])
		if err != nil {
			return domain.Example{}, err
		}
		return domain.Example{
			ID:           rec[0],
			EntryID:      rec[1],
			ExampleGroup: rec[2],
			Text:         rec[3],
			TrRu:         domain.StrPtr(rec[4]),
			TrEn:         domain.StrPtr(rec[5]),
			Num:          num,
			Lang:         domain.StrPtr(rec[7]),
		}, nil
	},
}

var exampleGroupSheet = sheet[domain.ExampleGroup]{
	name:   domain.TableExampleGroups,
	header: []string{"db_id", "entry_id", "num"},
	encode: func(_ codec, g domain.ExampleGroup) []string {
		return []string{g.ID, g.EntryID, optInt(g.Num)}
	},
	decode: func(_ codec, rec []string) (domain.ExampleGroup, error) {
		num, err := parseOptInt("num", rec[2])
		if err != nil {
			return domain.ExampleGroup{}, err
		}
		return domain.ExampleGroup{ID: rec[0], EntryID: rec[1], Num: num}, nil
	},
}

var mentionedSheet = sheet[domain.Mentioned]{
	name:   domain.TableMentioneds,
	header: []string{"db_id", "xml_id", "entry_id", "langs", "form", "gloss_ru", "gloss_en"},
	encode: func(c codec, m domain.Mentioned) []string {
		return []string{m.ID, c.list(m.XMLIDs), m.EntryID, c.list(m.Langs), c.list(m.Forms),
			c.list(m.GlossRu), c.list(m.GlossEn)}
	},
	check: func(c codec, m domain.Mentioned) error {
		lists := []struct {
			field string
			items []string
		}{
			{"xml_id", m.XMLIDs}, {"langs", m.Langs}, {"form", m.Forms},
			{"gloss_ru", m.GlossRu}, {"gloss_en", m.GlossEn},
		}
		for _, l := range lists {
			if err := c.checkList(l.field, l.items); err != nil {
				return err
			}
		}
		return nil
	},
	decode: func(c codec, rec []string) (domain.Mentioned, error) {
		return domain.Mentioned{
			ID:      rec[0],
			XMLIDs:  c.parseList(rec[1]),
			EntryID: rec[2],
			Langs:   c.parseList(rec[3]),
			Forms:   c.parseList(rec[4]),
			GlossRu: c.parseList(rec[5]),
			GlossEn: c.parseList(rec[6]),
		}, nil
	},
}

var languageHeader = []string{"code", "glottolog", "ru", "en", "comment", "lat", "long"}

// Headers returns the CSV header of every table, keyed by table name.
func Headers() map[string][]string {
	return map[string][]string{
		domain.TableLanguages:     languageHeader,
		domain.TableEntries:       entrySheet.header,
		domain.TableForms:         formSheet.header,
		domain.TableSenses:        senseSheet.header,
		domain.TableSenseGroups:   senseGroupSheet.header,
		domain.TableExamples:      exampleSheet.header,
		domain.TableExampleGroups: exampleGroupSheet.header,
		domain.TableMentioneds:    mentionedSheet.header,
	}
}
