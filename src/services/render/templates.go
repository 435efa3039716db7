package render

import (
	"fmt"
	"html/template"
	"strings"
)

const fragmentTemplates = `
{{define "image_file"}}<div class="flex flex-col justify-center items-center w-full">
  <img src="{{.URL}}" alt="{{.Name}}" class="rounded shadow-lg mb-4 w-full md:w-2/3"/>
  <a href="{{.URL}}" class="text-blue-400 hover:underline">View full size</a>
</div>{{end}}

{{define "linked_file"}}<div class="post_file">Linked file: <a href="{{.URL}}" class="text-blue-400 hover:underline">{{.Name}}</a></div>{{end}}

{{define "video_embed"}}<div class="my-4">
  <button type="button" data-embed-index="{{.Index}}" class="embed-loader bg-gray-700 text-white px-4 py-2 rounded hover:bg-gray-600">Load embed</button>
  <template class="video" id="video-{{.Index}}">{{.Markup}}</template>
</div>{{end}}

{{define "embed_link"}}<br><a href="{{.}}" class="text-blue-400 hover:underline">{{.}}</a>{{end}}

{{define "commenter"}}<div class="flex justify-between items-center mb-2">
  <div class="flex gap-2 items-center">
    <img src="{{.ImageURL}}" alt="{{.FullName}}" class="rounded-full w-8 h-8"/>
    <div class="flex items-center gap-2">
      <span class="text-md text-gray-500">{{.FullName}}</span>
      <span class="text-sm flex gap-1">{{if .IsByCreator}}<i class="fas fa-star text-yellow-400"></i>{{end}}{{if .IsByPatron}}<i class="fas fa-user text-blue-400"></i>{{end}}</span>
    </div>
  </div>
  <p class="text-sm text-gray-500">{{.Created}}</p>
</div>{{end}}

{{define "comment"}}<div class="comment mt-4">
  {{.Identity}}
  <p class="text-lg">{{.Body}}</p>
</div>
<div class="flex justify-between items-center mt-4 text-gray-500">
  <span title="Votes" class="px-2 py-1 hover:bg-gray-600 rounded"><i class="fas fa-thumbs-up"></i> {{.VoteSum}}</span>
  <span title="Replies" class="px-2 py-1 hover:bg-gray-600 rounded"><i class="fas fa-reply"></i> {{.ReplyCount}}</span>
  <span title="Deleted" class="px-2 py-1 hover:bg-gray-600 rounded">{{if .Deleted}}<i class="fas fa-trash"></i>{{end}}</span>
</div>
{{end}}
`

var fragments = template.Must(template.New("fragments").Parse(fragmentTemplates))

// execute runs one of the fragment templates. The templates are static and
// their data is built here, so a failure is a programming error.
func execute(name string, data any) template.HTML {
	var sb strings.Builder
	if err := fragments.ExecuteTemplate(&sb, name, data); err != nil {
		panic(fmt.Sprintf("render: template %s failed: %v", name, err))
	}
	return template.HTML(sb.String())
}
