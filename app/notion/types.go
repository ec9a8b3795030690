package notion

// Domain view of a Notion page. The wire format is flattened into the small
// set of property shapes the pipelines actually read.

type Page struct {
	ID             string
	CreatedTime    string
	LastEditedTime string
	Properties     map[string]Property
}

type Property struct {
	Type        string
	Text        string   // plain text of title / rich_text properties
	Number      *float64 // number properties
	Select      string   // selected option name
	MultiSelect []string // selected option names
	Files       []string // external or hosted file URLs
}

// Filter selects pages whose select-type property equals a value. It maps
// onto Notion's database query filter object.
type Filter struct {
	Property string
	Equals   string
}

func (f *Filter) payload() map[string]interface{} {
	return map[string]interface{}{
		"property": f.Property,
		"select": map[string]interface{}{
			"equals": f.Equals,
		},
	}
}

// Properties is a partial property map for page create/update calls. Notion
// merges it server side; properties not named here are left untouched.
type Properties map[string]interface{}

func TitleProperty(text string) interface{} {
	return map[string]interface{}{
		"title": []interface{}{textObject(text)},
	}
}

func RichTextProperty(text string) interface{} {
	return map[string]interface{}{
		"rich_text": []interface{}{textObject(text)},
	}
}

func NumberProperty(value float64) interface{} {
	return map[string]interface{}{
		"number": value,
	}
}

func SelectProperty(name string) interface{} {
	return map[string]interface{}{
		"select": map[string]interface{}{"name": name},
	}
}

func MultiSelectProperty(names []string) interface{} {
	options := make([]interface{}, 0, len(names))
	for _, name := range names {
		options = append(options, map[string]interface{}{"name": name})
	}
	return map[string]interface{}{
		"multi_select": options,
	}
}

func textObject(text string) map[string]interface{} {
	return map[string]interface{}{
		"text": map[string]interface{}{"content": text},
	}
}

// Wire types for responses.

type richTextJSON struct {
	PlainText string `json:"plain_text"`
}

type optionJSON struct {
	Name string `json:"name"`
}

type fileJSON struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	External *struct {
		URL string `json:"url"`
	} `json:"external"`
	File *struct {
		URL string `json:"url"`
	} `json:"file"`
}

type propertyJSON struct {
	Type        string         `json:"type"`
	Title       []richTextJSON `json:"title"`
	RichText    []richTextJSON `json:"rich_text"`
	Number      *float64       `json:"number"`
	Select      *optionJSON    `json:"select"`
	MultiSelect []optionJSON   `json:"multi_select"`
	Files       []fileJSON     `json:"files"`
}

type pageJSON struct {
	ID             string                  `json:"id"`
	CreatedTime    string                  `json:"created_time"`
	LastEditedTime string                  `json:"last_edited_time"`
	Properties     map[string]propertyJSON `json:"properties"`
}

type queryResponseJSON struct {
	Results    []pageJSON `json:"results"`
	HasMore    bool       `json:"has_more"`
	NextCursor string     `json:"next_cursor"`
}

type blockJSON struct {
	Type      string `json:"type"`
	Paragraph *struct {
		RichText []richTextJSON `json:"rich_text"`
	} `json:"paragraph"`
}

type blockChildrenJSON struct {
	Results []blockJSON `json:"results"`
}
