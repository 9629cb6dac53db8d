package editor

import (
	"net/url"
	"reflect"
	"testing"

	"github.com/glasscube/glasscube/content"
)

func TestDecodeBlogForm(t *testing.T) {
	form := url.Values{
		FieldID:          {"abc"},
		FieldTitle:       {"Hello World"},
		FieldDescription: {"desc"},
		FieldAuthor:      {"Me"},
		FieldTags:        {"#go #templ  #go"},
		FieldBlockType:   {"h2", "img"},
		FieldBlockData:   {"Intro", "/uploads/a.png"},
		FieldNewType:     {"video"},
	}
	d, err := DecodeBlogForm(form)
	if err != nil {
		t.Fatal(err)
	}
	if d.ID != "abc" || d.Slug() != "hello-world" || d.NewType != content.Video {
		t.Fatalf("unexpected draft %+v", d)
	}
	if !reflect.DeepEqual(d.Tags, []string{"go", "templ", "go"}) {
		t.Fatalf("tags = %v", d.Tags)
	}
	want := Blocks{{Type: content.H2, Data: "Intro"}, {Type: content.Image, Data: "/uploads/a.png"}}
	if !reflect.DeepEqual(d.Content, want) {
		t.Fatalf("content = %+v", d.Content)
	}
}

func TestDecodeMismatchedBlocks(t *testing.T) {
	form := url.Values{FieldBlockType: {"h2", "p"}, FieldBlockData: {"only one"}}
	if _, err := DecodeProjectForm(form); err == nil {
		t.Fatalf("expected error for mismatched block fields")
	}
}

func TestDecodeProjectForm(t *testing.T) {
	form := url.Values{
		FieldTitle:   {"Portfolio"},
		FieldShort:   {"My site"},
		FieldTech:    {"Go#Echo templ"},
		FieldGithub:  {" https://github.com/x/y "},
		FieldNewType: {"link"},
	}
	d, err := DecodeProjectForm(form)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(d.Tech, []string{"Go", "Echo", "templ"}) {
		t.Fatalf("tech = %v", d.Tech)
	}
	if d.Github != "https://github.com/x/y" {
		t.Fatalf("github = %q", d.Github)
	}
	if d.NewType != content.Paragraph {
		t.Fatalf("unsupported new type should fall back to paragraph, got %q", d.NewType)
	}
	p := d.Project()
	if p.Full == nil || p.Tags == nil {
		t.Fatalf("expected empty, non-nil lists in document: %+v", p)
	}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		in   string
		want Action
	}{
		{"save", Action{Kind: ActionSave}},
		{"add", Action{Kind: ActionAdd}},
		{"remove-3", Action{Kind: ActionRemove, Index: 3}},
		{"media-delete-0", Action{Kind: ActionMediaDelete, Index: 0}},
		{"thumbnail-delete", Action{Kind: ActionThumbnailDelete}},
		{"remove-x", Action{}},
		{"", Action{}},
	}
	for _, tt := range tests {
		if got := ParseAction(tt.in); got != tt.want {
			t.Errorf("ParseAction(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestDraftRoundTrip(t *testing.T) {
	b := content.Blog{ID: "1", Title: "T", Tags: []string{"a"}, Content: []content.Block{{Type: content.Paragraph, Data: "x"}}}
	d := BlogDraftFrom(b)
	d.Content, _ = d.Content.Update(0, "y")
	if b.Content[0].Data != "x" {
		t.Fatalf("editing a draft must not modify the source blog")
	}
	if got := d.Blog(); got.Slug != "t" || got.Content[0].Data != "y" || got.ID != "1" {
		t.Fatalf("unexpected document %+v", got)
	}
}
