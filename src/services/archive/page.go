package archive

import "html/template"

const pageTemplates = `
{{define "post"}}<article id="{{.Anchor}}" class="bg-gray-800 p-4 mb-6 rounded-2xl">
  <header class="mb-4">
    <div class="flex justify-between items-center">
      <h2 class="text-2xl font-bold">{{.Title}}</h2>
      <a href="{{.URL}}" class="flex text-gray-500 hover:text-gray-300 items-center" target="_blank">
        Open
        <i class="fa-solid fa-arrow-up-right-from-square ml-2"></i>
      </a>
    </div>
    <p class="text-sm text-gray-500">{{.Published}}</p>
  </header>
  {{.Variants}}
  <p class="text-lg mb-4">{{.Content}}</p>
  <div class="mb-4 text-gray-500">
    <span title="Likes"><i class="fas fa-heart"></i> {{.LikeCount}}</span>
    <span class="ml-4" title="Comments"><i class="fas fa-comment"></i> {{.CommentCount}}</span>
  </div>
  {{- if .Comments}}
  <section class="post-comments">
    <h3 class="text-xl font-bold">Comments</h3>
    {{.Comments}}
  </section>
  {{- end}}
</article>
{{end}}

{{define "page"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Name}}'s Archive</title>
  <script src="https://cdn.tailwindcss.com"></script>
  <link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.7.1/css/all.min.css">
  <script>
    document.addEventListener('DOMContentLoaded', function () {
      document.querySelectorAll('.embed-loader').forEach(function (button) {
        button.addEventListener('click', function () {
          var temp = document.getElementById('video-' + button.dataset.embedIndex);
          temp.parentNode.appendChild(temp.content.cloneNode(true));
          button.remove();
        });
      });

      var toggleTocButton = document.getElementById('toggle-toc');
      var tocContent = document.getElementById('toc-content');
      toggleTocButton.addEventListener('click', function () {
        tocContent.classList.toggle('hidden');
      });
    });
  </script>
  <style>
    a { color: #3498db; }
    a:hover, a:active, a:focus { color: #2980b9; }
    a:visited { color: #3498db; }
  </style>
</head>
<body class="bg-gray-700 text-gray-100 font-sans leading-normal tracking-normal">
  <header>
    <nav class="bg-gray-800 p-4 flex justify-between items-center">
      <span class="text-2xl font-bold">{{.Name}}'s Archive</span>
    </nav>
  </header>

  <main class="flex flex-col md:flex-row min-h-screen mx-4 lg:mx-36 my-10">
    <aside class="bg-gray-800 w-full md:w-3/5 py-4 px-4 rounded-2xl mb-6 md:mb-0 md:mr-6">
      <div class="flex justify-between items-center md:block">
        <h2 class="text-2xl font-bold">Table of Content</h2>
        <button id="toggle-toc" class="text-gray-500 md:hidden focus:outline-none">
          <i class="fas fa-list"></i>
        </button>
      </div>
      <ul id="toc-content" class="p-0 m-0 leading-loose text-lg font-bold hidden md:block mt-4 ml-2">
      {{- range .TOC}}
        <li class="cursor-pointer">
          <a href="#{{.Anchor}}" class="text-blue-400 hover:underline">{{.Title}} ({{.Day}})</a>
        </li>
        <hr class="border-gray-600 my-4">
      {{- end}}
      </ul>
    </aside>

    <section id="posts" class="w-full md:w-3/5">
    {{- range .Posts}}
      {{.}}
    {{- end}}
    </section>
  </main>

  <footer class="bg-gray-800 p-4 text-center">
    <p class="text-sm text-gray-500">Post Archive &copy; {{.Year}}</p>
    <a href="#" class="fixed bottom-4 right-4 bg-gray-800 p-3 rounded-full text-gray-500 hover:text-gray-100 border-2 border-gray-500 focus:outline-none" aria-label="Back to top">
      <i class="fas fa-arrow-up"></i>
    </a>
  </footer>
</body>
</html>
{{end}}
`

var page = template.Must(template.New("page").Parse(pageTemplates))

const commentSeparator = `<hr class="border-gray-600 my-4">`

type tocEntry struct {
	Anchor string
	Title  string
	Day    string
}

type postView struct {
	Anchor       string
	Title        string
	URL          string
	Published    string
	Variants     template.HTML
	Content      template.HTML
	LikeCount    int
	CommentCount int
	Comments     template.HTML
}

type pageView struct {
	Name  string
	Year  int
	TOC   []tocEntry
	Posts []template.HTML
}
