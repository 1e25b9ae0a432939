package webhook

import "testing"

func TestParseContentType(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want ContentType
		err  error
	}{
		{
			name: "JSON",
			s:    "application/json",
			want: ContentTypeJSON,
		},
		{
			name: "Form",
			s:    "application/x-www-form-urlencoded",
			want: ContentTypeForm,
		},
		{
			name: "JSONWithCharset",
			s:    "application/json; charset=utf-8",
			want: ContentTypeJSON,
		},
		{
			name: "Invalid",
			s:    "application/invalid",
			err:  ErrInvalidContentType,
			want: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseContentType(tt.s)
			if err != tt.err {
				t.Errorf("ParseContentType() error = %v, wantErr %v", err, tt.err)
				return
			}
			if got != tt.want {
				t.Errorf("ParseContentType() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContentTypeUnmarshalText(t *testing.T) {
	tests := []struct {
		name    string
		text    []byte
		want    ContentType
		wantErr bool
	}{
		{
			name: "JSON",
			text: []byte("application/json"),
			want: ContentTypeJSON,
		},
		{
			name: "Form",
			text: []byte("application/x-www-form-urlencoded"),
			want: ContentTypeForm,
		},
		{
			name:    "Invalid",
			text:    []byte("application/invalid"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := new(ContentType)
			if err := c.UnmarshalText(tt.text); (err != nil) != tt.wantErr {
				t.Errorf("ContentType.UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
			}
			if *c != tt.want {
				t.Errorf("ContentType.UnmarshalText() got = %v, want %v", *c, tt.want)
			}
		})
	}
}

func TestParseEvent(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want Event
		err  error
	}{
		{
			name: "Project",
			s:    "project",
			want: EventProject,
		},
		{
			name: "Share",
			s:    "share",
			want: EventShare,
		},
		{
			name: "Stage",
			s:    "stage",
			want: EventStage,
		},
		{
			name: "Invalid",
			s:    "repository",
			err:  ErrInvalidEvent,
			want: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEvent(tt.s)
			if err != tt.err {
				t.Errorf("ParseEvent() error = %v, wantErr %v", err, tt.err)
				return
			}
			if got != tt.want {
				t.Errorf("ParseEvent() got = %v, want %v", got, tt.want)
			}
		})
	}
}
