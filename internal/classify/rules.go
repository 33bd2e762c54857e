package classify

import "strings"

// Category pairs a category name with the extensions that select it.
// Declaration order matters: when two categories claim the same extension,
// the first one wins.
type Category struct {
	Name       string
	Extensions []string
}

// KeywordRule refines a category into a subcategory when any of its keywords
// appears as a case-insensitive substring of the filename.
type KeywordRule struct {
	Keywords    []string
	Subcategory string
}

// FallbackCategory receives every file whose extension matches no table entry.
const FallbackCategory = "其他"

// DefaultCategories returns the built-in extension tables.
func DefaultCategories() []Category {
	return []Category{
		{Name: "文档", Extensions: []string{".pdf", ".doc", ".docx", ".txt", ".rtf", ".odt", ".xlsx", ".xls", ".pptx", ".ppt"}},
		{Name: "图片", Extensions: []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp", ".heic", ".svg", ".tiff"}},
		{Name: "安装包", Extensions: []string{".dmg", ".pkg", ".app", ".exe", ".msi", ".zip", ".rar", ".7z", ".tar", ".gz", ".bz2"}},
		{Name: "视频", Extensions: []string{".mp4", ".mov", ".avi", ".mkv", ".wmv", ".flv"}},
		{Name: "音频", Extensions: []string{".mp3", ".wav", ".flac", ".aac", ".m4a"}},
		{Name: "代码", Extensions: []string{".py", ".js", ".ts", ".html", ".css", ".json", ".xml", ".yaml", ".yml"}},
		{Name: "数据分析", Extensions: []string{".do", ".csv", ".dta", ".sav", ".rdata", ".sqlite", ".db"}},
	}
}

// DefaultKeywordRules returns the built-in keyword rule lists, keyed by
// category name. Rules are evaluated in slice order; the first match wins.
func DefaultKeywordRules() map[string][]KeywordRule {
	return map[string][]KeywordRule{
		"文档": {
			{Keywords: []string{"论文", "paper", "research", "study", "journal", "review"}, Subcategory: "论文"},
			{Keywords: []string{"arxiv", "ieee", "acm", "springer", "elsevier", "s2.0-", "1-s2.0"}, Subcategory: "论文"},
			{Keywords: []string{"摘要", "abstract", "introduction", "conclusion"}, Subcategory: "论文"},
			{Keywords: []string{"发票", "invoice", "receipt", "账单", "bill"}, Subcategory: "发票"},
			{Keywords: []string{"合同", "contract", "agreement", "协议"}, Subcategory: "合同"},
			{Keywords: []string{"简历", "resume", "cv", "curriculum"}, Subcategory: "简历"},
			{Keywords: []string{"报告", "report", "汇报", "总结"}, Subcategory: "报告"},
			{Keywords: []string{"手册", "manual", "guide", "教程", "tutorial"}, Subcategory: "手册"},
		},
		"图片": {
			{Keywords: []string{"screenshot", "截图", "屏幕", "screen"}, Subcategory: "截图"},
			{Keywords: []string{"photo", "img_", "dsc_", "dcim"}, Subcategory: "照片"},
			{Keywords: []string{"design", "设计", "ui", "mockup"}, Subcategory: "设计"},
		},
	}
}

// Ruleset is an immutable compiled classification table.
type Ruleset struct {
	fallback   string
	extensions map[string]string
	keywords   map[string][]KeywordRule
	names      map[string]struct{}
	nameOrder  []string
}

// NewRuleset compiles category and keyword tables into a Ruleset. Extension
// lookups are lowercased; duplicate extensions keep their first owner.
func NewRuleset(categories []Category, keywords map[string][]KeywordRule, fallback string) *Ruleset {
	if fallback == "" {
		fallback = FallbackCategory
	}
	r := &Ruleset{
		fallback:   fallback,
		extensions: make(map[string]string),
		keywords:   make(map[string][]KeywordRule, len(keywords)),
		names:      make(map[string]struct{}, len(categories)+1),
	}
	for _, cat := range categories {
		if _, seen := r.names[cat.Name]; !seen {
			r.names[cat.Name] = struct{}{}
			r.nameOrder = append(r.nameOrder, cat.Name)
		}
		for _, ext := range cat.Extensions {
			key := strings.ToLower(ext)
			if _, claimed := r.extensions[key]; !claimed {
				r.extensions[key] = cat.Name
			}
		}
	}
	for name, rules := range keywords {
		compiled := make([]KeywordRule, 0, len(rules))
		for _, rule := range rules {
			lowered := make([]string, len(rule.Keywords))
			for i, kw := range rule.Keywords {
				lowered[i] = strings.ToLower(kw)
			}
			compiled = append(compiled, KeywordRule{Keywords: lowered, Subcategory: rule.Subcategory})
		}
		r.keywords[name] = compiled
	}
	if _, seen := r.names[fallback]; !seen {
		r.names[fallback] = struct{}{}
		r.nameOrder = append(r.nameOrder, fallback)
	}
	return r
}

// Default returns a Ruleset compiled from the built-in tables.
func Default() *Ruleset {
	return NewRuleset(DefaultCategories(), DefaultKeywordRules(), FallbackCategory)
}

// WithExtensions returns a copy of the built-in tables extended (or
// overridden) by extra extension-to-category mappings from configuration.
func WithExtensions(overrides map[string]string) *Ruleset {
	if len(overrides) == 0 {
		return Default()
	}
	categories := DefaultCategories()
	r := NewRuleset(categories, DefaultKeywordRules(), FallbackCategory)
	for ext, name := range overrides {
		key := strings.ToLower(ext)
		if !strings.HasPrefix(key, ".") {
			key = "." + key
		}
		r.extensions[key] = name
		if _, seen := r.names[name]; !seen {
			r.names[name] = struct{}{}
			r.nameOrder = append(r.nameOrder, name)
		}
	}
	return r
}

// IsCategory reports whether name is a known category (including the
// fallback). The scanner and watcher use this to recognize organized output
// folders.
func (r *Ruleset) IsCategory(name string) bool {
	_, ok := r.names[name]
	return ok
}

// CategoryNames returns every known category name in declaration order, the
// fallback last unless a table already declared it. Undo pruning walks these
// at the target root.
func (r *Ruleset) CategoryNames() []string {
	out := make([]string, len(r.nameOrder))
	copy(out, r.nameOrder)
	return out
}
