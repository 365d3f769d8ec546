package httpcore

import "testing"

func TestRequestGetParams(t *testing.T) {
	req := &Request{Method: GET, URL: "/search?q=go+lang&page=2", Headers: NewHeader()}

	v, ok := req.GetParam("q")
	if !ok || v != "go lang" {
		t.Fatalf("GetParam(q) = %q, %v; want %q, true", v, ok, "go lang")
	}
	if v, ok := req.GetParam("page"); !ok || v != "2" {
		t.Fatalf("GetParam(page) = %q, %v", v, ok)
	}
	if _, ok := req.GetParam("missing"); ok {
		t.Fatal("GetParam(missing) reported ok=true")
	}
}

func TestRequestGetQueriesFromURLForm(t *testing.T) {
	req := &Request{
		Method:  POST,
		URL:     "/submit",
		Headers: NewHeader(),
		Body:    Body{Kind: BodyURLForm, Form: map[string]string{"name": "a"}},
	}
	if !req.HasBody() {
		t.Fatal("HasBody() = false for a BodyURLForm request")
	}
	if v, ok := req.GetQuery("name"); !ok || v != "a" {
		t.Fatalf("GetQuery(name) = %q, %v", v, ok)
	}
}

func TestRequestGetFilesFromMultipart(t *testing.T) {
	req := &Request{
		Method:  POST,
		URL:     "/upload",
		Headers: NewHeader(),
		Body: Body{
			Kind: BodyMulti,
			Multi: map[string]MultipartField{
				"doc": {IsFile: true, File: FileUpload{Filename: "a.txt", Filepath: "/tmp/a.txt"}},
				"tag": {IsFile: false, Text: "invoice"},
			},
		},
	}

	if _, ok := req.GetFile("doc"); !ok {
		t.Fatal("GetFile(doc) not found")
	}
	if _, ok := req.GetFile("tag"); ok {
		t.Fatal("GetFile(tag) should not resolve a text field")
	}
	if v, ok := req.GetQuery("tag"); !ok || v != "invoice" {
		t.Fatalf("GetQuery(tag) = %q, %v", v, ok)
	}
}

func TestRequestPlainBodyOnlyForText(t *testing.T) {
	req := &Request{Body: Body{Kind: BodyText, Text: "hi"}}
	if req.PlainBody() != "hi" {
		t.Fatalf("PlainBody() = %q, want hi", req.PlainBody())
	}

	req2 := &Request{Body: Body{Kind: BodyNone}}
	if req2.PlainBody() != "" {
		t.Fatalf("PlainBody() on BodyNone = %q, want empty", req2.PlainBody())
	}
}
