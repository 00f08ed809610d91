package subtitles

import "testing"

func TestDropAdvertisements(t *testing.T) {
	raw := "1\n00:00:01,000 --> 00:00:03,000\nwww.OpenSubtitles.org\n\n" +
		"2\n00:00:04,000 --> 00:00:06,000\n你好\nHello there!\n\n" +
		"3\n00:00:07,000 --> 00:00:09,000\nSubtitle by AwesomeSubs\n\n" +
		"4\n00:00:10,000 --> 00:00:11,000\n人人影视字幕组\n"

	cleaned, removed := DropAdvertisements(Parse([]byte(raw)))
	if removed != 3 {
		t.Fatalf("expected 3 cues removed, got %d", removed)
	}
	if cleaned.Len() != 1 || cleaned.Entries[0].Text != "你好\nHello there!" {
		t.Fatalf("unexpected remaining cues %+v", cleaned.Entries)
	}
	if cleaned.Entries[0].Start != 4 {
		t.Fatalf("timing changed: %v", cleaned.Entries[0].Start)
	}
	if cleaned.Encoding != EncodingUTF8BOM {
		t.Fatalf("encoding not carried over: %q", cleaned.Encoding)
	}
}

func TestIsAdvertisementIgnoresDialogue(t *testing.T) {
	for _, text := range []string{"Why did you subscribe?", "", "我们走吧"} {
		if IsAdvertisement(Entry{Text: text}) {
			t.Fatalf("%q flagged as advertisement", text)
		}
	}
}
