package classify

import "testing"

func TestClassifyByExtension(t *testing.T) {
	rules := Default()

	cases := []struct {
		name     string
		filename string
		want     string
	}{
		{"pdf", "report-final.PDF", "文档"},
		{"image", "holiday.jpeg", "图片"},
		{"archive", "tool.tar", "安装包"},
		{"video", "clip.mkv", "视频"},
		{"audio", "song.flac", "音频"},
		{"code", "script.py", "代码"},
		{"data", "panel.dta", "数据分析"},
		{"unknown extension", "blob.xyz", "其他"},
		{"no extension", "README", "其他"},
		{"empty name", "", "其他"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := rules.Classify(tc.filename)
			if got.Category != tc.want {
				t.Fatalf("Classify(%q).Category = %q, want %q", tc.filename, got.Category, tc.want)
			}
		})
	}
}

func TestClassifyKeywordSubcategory(t *testing.T) {
	rules := Default()

	cases := []struct {
		filename string
		want     string
	}{
		{"Attention_Is_All_You_Need_PAPER.pdf", "论文"},
		{"1-s2.0-S0167xxxx-main.pdf", "论文"},
		{"invoice_march.pdf", "发票"},
		{"rental-AGREEMENT.docx", "合同"},
		{"my_resume_2026.pdf", "简历"},
		{"Screenshot 2026-08-25.png", "截图"},
		{"IMG_2041.jpg", "照片"},
		{"vacation.png", ""},
		{"notes.txt", ""},
	}
	for _, tc := range cases {
		got := rules.Classify(tc.filename)
		if got.Subcategory != tc.want {
			t.Errorf("Classify(%q).Subcategory = %q, want %q", tc.filename, got.Subcategory, tc.want)
		}
	}
}

func TestClassifyFirstRuleWins(t *testing.T) {
	rules := Default()

	// "paper" (论文 rule) and "invoice" (发票 rule) both match; the 论文 rule
	// is declared first.
	got := rules.Classify("paper_invoice.pdf")
	if got.Subcategory != "论文" {
		t.Fatalf("Subcategory = %q, want 论文", got.Subcategory)
	}
}

func TestClassifyNoKeywordRulesForCategory(t *testing.T) {
	rules := Default()

	// 视频 has no keyword rules, so even a keyword-bearing name stays bare.
	got := rules.Classify("paper_demo.mp4")
	if got.Category != "视频" || got.Subcategory != "" {
		t.Fatalf("got %+v, want 视频 with no subcategory", got)
	}
}

func TestClassifyCustomRuleset(t *testing.T) {
	rules := NewRuleset(
		[]Category{{Name: "PDF文档", Extensions: []string{".pdf"}}},
		map[string][]KeywordRule{
			"PDF文档": {{Keywords: []string{"paper"}, Subcategory: "论文"}},
		},
		"",
	)

	got := rules.Classify("paper_draft.pdf")
	if got.Category != "PDF文档" || got.Subcategory != "论文" {
		t.Fatalf("got %+v, want PDF文档/论文", got)
	}
	if got.Display() != "PDF文档/论文" {
		t.Fatalf("Display() = %q", got.Display())
	}
}

func TestWithExtensions(t *testing.T) {
	rules := WithExtensions(map[string]string{"epub": "文档", ".log": "日志"})

	if got := rules.Classify("novel.epub"); got.Category != "文档" {
		t.Fatalf("epub category = %q, want 文档", got.Category)
	}
	if got := rules.Classify("daemon.log"); got.Category != "日志" {
		t.Fatalf("log category = %q, want 日志", got.Category)
	}
	if !rules.IsCategory("日志") {
		t.Fatal("new override category should be known")
	}
}

func TestCategoryNamesIncludesFallback(t *testing.T) {
	rules := Default()
	names := rules.CategoryNames()
	found := false
	for _, name := range names {
		if name == FallbackCategory {
			found = true
		}
	}
	if !found {
		t.Fatalf("CategoryNames() = %v, missing fallback", names)
	}
	if !rules.IsCategory("文档") || rules.IsCategory("not-a-category") {
		t.Fatal("IsCategory misbehaves")
	}
}
