package newsmaker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorderSink struct{ events []Event }

func (r *recorderSink) OnEvent(ev Event) { r.events = append(r.events, ev) }

var (
	tagTitle       = NewVariantTag("NEWS_TITLE")
	tagDescription = NewVariantTag("NEWS_DESCRIPTION")
	tagDate        = NewVariantTag("NEWS_DATE")
	tagBackground  = NewTag("BACKGROUND_COLOR")
	tagDetailsURL  = NewTag("NEWS_DETAILS_URL")
	tagImageURL    = NewTag(ImageURLTag)
)

func testFormat() *Format {
	return &Format{
		Base:                 "<html>\n    @NEWS#FR\n    @NEWS#EN\n</html>",
		DefaultFieldTemplate: "<div>@NEWS_TITLE</div>",
		ImageFragment:        `<img src="@NEWS_IMAGE_URL"/>`,
		Languages:            []string{"FR", "EN"},
		Presets: []*Preset{
			{
				Name:       "event",
				Template:   "<div class=\"event\">@NEWS_TITLE</div>",
				SectionTag: "EVENTS",
				Parameters: map[Tag][]string{
					tagTitle:      {"Titre", "Title"},
					tagBackground: {"#ffffff"},
				},
			},
		},
	}
}

func TestField_Values(t *testing.T) {
	t.Run("should store and read a shared value", func(t *testing.T) {
		f := NewField(testFormat())
		require.NoError(t, f.SetValue(tagBackground, "#fff"))
		v, err := f.Value(tagBackground)
		require.NoError(t, err)
		assert.Equal(t, "#fff", v)
	})

	t.Run("should store per-language values without merging them", func(t *testing.T) {
		f := NewField(testFormat())
		require.NoError(t, f.SetValueFor(tagTitle, "FR", "Titre"))
		require.NoError(t, f.SetValueFor(tagTitle, "EN", "Title"))

		fr, err := f.ValueFor(tagTitle, "FR")
		require.NoError(t, err)
		en, err := f.ValueFor(tagTitle, "EN")
		require.NoError(t, err)
		assert.Equal(t, "Titre", fr)
		assert.Equal(t, "Title", en)
	})

	t.Run("should reject the shared accessor on a variant tag", func(t *testing.T) {
		f := NewField(testFormat())
		err := f.SetValue(tagTitle, "x")
		var wve *WrongVarianceError
		require.ErrorAs(t, err, &wve)
		assert.Equal(t, "SetValue", wve.Op)

		_, err = f.Value(tagTitle)
		require.ErrorAs(t, err, &wve)
	})

	t.Run("should reject the per-language setter on a shared tag", func(t *testing.T) {
		f := NewField(testFormat())
		err := f.SetValueFor(tagBackground, "FR", "x")
		var wve *WrongVarianceError
		require.ErrorAs(t, err, &wve)
	})

	t.Run("should allow reading a shared tag through the per-language accessor", func(t *testing.T) {
		f := NewField(testFormat())
		require.NoError(t, f.SetValue(tagBackground, "#000"))
		v, err := f.ValueFor(tagBackground, "EN")
		require.NoError(t, err)
		assert.Equal(t, "#000", v)
	})

	t.Run("should return empty string for a variant tag with no value yet", func(t *testing.T) {
		f := NewField(testFormat())
		v, err := f.ValueFor(tagTitle, "FR")
		require.NoError(t, err)
		assert.Equal(t, "", v)
	})

	t.Run("should emit a ValueChangedEvent on mutation", func(t *testing.T) {
		sink := &recorderSink{}
		f := NewField(testFormat(), WithFieldSink(sink))
		require.NoError(t, f.SetValueFor(tagTitle, "FR", "Titre"))
		require.Len(t, sink.events, 1)
		ev, ok := sink.events[0].(ValueChangedEvent)
		require.True(t, ok)
		assert.Equal(t, "FR", ev.Language)
		assert.Equal(t, "Titre", ev.Value)
	})
}

func TestField_Render(t *testing.T) {
	t.Run("should substitute shared then per-language values", func(t *testing.T) {
		f := NewField(testFormat())
		f.Template = `<div style="background:@BACKGROUND_COLOR">[@NEWS_TITLE]</div>`
		require.NoError(t, f.SetValue(tagBackground, "#fff"))
		require.NoError(t, f.SetValueFor(tagTitle, "FR", "Titre"))
		require.NoError(t, f.SetValueFor(tagTitle, "EN", "Title"))

		assert.Equal(t, `<div style="background:#fff">[Titre]</div>`, f.Render("FR"))
		assert.Equal(t, `<div style="background:#fff">[Title]</div>`, f.Render("EN"))
	})

	t.Run("should leave placeholders of absent tags as literal text", func(t *testing.T) {
		f := NewField(testFormat())
		f.Template = "[@NEWS_TITLE][@NEWS_DATE]"
		require.NoError(t, f.SetValueFor(tagTitle, "FR", "Titre"))

		assert.Equal(t, "[Titre][@NEWS_DATE]", f.Render("FR"))
	})

	t.Run("should never leave a placeholder whose tag has a value", func(t *testing.T) {
		f := NewField(testFormat())
		f.Template = "@BACKGROUND_COLOR @NEWS_TITLE @NEWS_DESCRIPTION"
		require.NoError(t, f.SetValue(tagBackground, "red"))
		require.NoError(t, f.SetValueFor(tagTitle, "FR", "t"))
		require.NoError(t, f.SetValueFor(tagDescription, "FR", "d"))

		out := f.Render("FR")
		for _, tag := range f.Tags() {
			assert.NotContains(t, out, tag.Placeholder())
		}
	})

	t.Run("should replace the longer of two prefix-overlapping tags first", func(t *testing.T) {
		short := NewVariantTag("NEWS_TITLE")
		long := NewVariantTag("NEWS_TITLE_LONG")
		f := NewField(testFormat())
		f.Template = "@NEWS_TITLE_LONG|@NEWS_TITLE"
		require.NoError(t, f.SetValueFor(short, "FR", "short"))
		require.NoError(t, f.SetValueFor(long, "FR", "long"))

		assert.Equal(t, "long|short", f.Render("FR"))
	})

	t.Run("should honor the length order when the shorter tag is in the other map", func(t *testing.T) {
		shared := NewTag("NEWS_TITLE")
		long := NewVariantTag("NEWS_TITLE_LONG")
		f := NewField(testFormat())
		f.Template = "@NEWS_TITLE_LONG|@NEWS_TITLE"
		require.NoError(t, f.SetValue(shared, "short"))
		require.NoError(t, f.SetValueFor(long, "FR", "long"))

		assert.Equal(t, "long|short", f.Render("FR"))
	})

	t.Run("should collapse the image placeholder when the URL is empty", func(t *testing.T) {
		f := NewField(testFormat())
		f.Template = "<div>@NEWS_IMAGE</div>"
		require.NoError(t, f.SetValue(tagImageURL, ""))

		assert.Equal(t, "<div></div>", f.Render("FR"))
	})

	t.Run("should expand the image placeholder through the image fragment", func(t *testing.T) {
		f := NewField(testFormat())
		f.Template = "<div>@NEWS_IMAGE</div>"
		require.NoError(t, f.SetValue(tagImageURL, "http://x/y.png"))

		assert.Equal(t, `<div><img src="http://x/y.png"/></div>`, f.Render("FR"))
	})

	t.Run("should keep the image placeholder literal when the URL tag was never set", func(t *testing.T) {
		f := NewField(testFormat())
		f.Template = "<div>@NEWS_IMAGE</div>"

		assert.Equal(t, "<div>@NEWS_IMAGE</div>", f.Render("FR"))
	})

	t.Run("should use the default template and section on creation", func(t *testing.T) {
		format := testFormat()
		f := NewField(format)
		assert.Equal(t, DefaultSection, f.Section)
		assert.Equal(t, format.DefaultFieldTemplate, f.Template)
	})
}
