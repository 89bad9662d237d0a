package section

// offset and section sizes in the packed-resources stream
const (
	MagicSize           = 8  // magic plus version tag
	HeaderSize          = 13 // fixed header after the magic: u8 count + three u32 lengths
	BlobIndexRecordSize = 9  // one blob-section record: u8 tag + u64 length

	// IndexStartOffset is the byte offset where the blob-section index starts.
	IndexStartOffset = MagicSize + HeaderSize
)
