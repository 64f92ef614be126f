package model

// BlockType is the discriminator of a content block.
type BlockType string

const (
	BlockParagraph      BlockType = "paragraph"
	BlockFirstParagraph BlockType = "first-paragraph"
	BlockH2             BlockType = "h2"
	BlockH3             BlockType = "h3"
	BlockImage          BlockType = "image"
	BlockQuote          BlockType = "quote"
	BlockTwoColumns     BlockType = "two-columns"
	BlockQA             BlockType = "qa"
	BlockLink           BlockType = "link"
)

// IsParagraph reports whether t carries body text.
func (t BlockType) IsParagraph() bool {
	return t == BlockParagraph || t == BlockFirstParagraph
}

/*

ContentBlock is one rendering unit of an article or interview body. The
front end interprets the block at render time, the service only looks at
the discriminator, the paragraph text and the images.

type: paragraph, first-paragraph, h2, h3, image, quote, two-columns, qa,
link, or any type a newer dashboard sends
text: paragraph / heading / quote text, may contain inline HTML
url: image url of an image block
left, right: columns of a two-columns block, each {type, content, caption}
where content is the image url when the column type is "image"
other fields (caption, question, answer, linkedContentId, ...) are kept
verbatim.
*/
type ContentBlock map[string]interface{}

func (b ContentBlock) Type() BlockType {
	t, _ := b["type"].(string)
	return BlockType(t)
}

// Text returns the "text" field of the block, or empty string if missing.
func (b ContentBlock) Text() string {
	t, _ := b["text"].(string)
	return t
}

// ImageUrls returns the image urls carried by the block, including the
// image columns of a two-columns block.
func (b ContentBlock) ImageUrls() []string {
	switch b.Type() {
	case BlockImage:
		for _, key := range []string{"url", "src", "imageUrl"} {
			if u, ok := b[key].(string); ok && u != "" {
				return []string{u}
			}
		}
	case BlockTwoColumns:
		var urls []string
		for _, side := range []string{"left", "right"} {
			col, ok := b[side].(map[string]interface{})
			if !ok || col["type"] != string(BlockImage) {
				continue
			}
			if u, ok := col["content"].(string); ok && u != "" {
				urls = append(urls, u)
			}
		}
		return urls
	}
	return nil
}
