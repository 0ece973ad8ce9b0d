package config

// Built-in defaults cover the stock asset layout. Both documents are in
// the relaxed dialect accepted by the parse package.

const defaultDirsConfig = `// Top-level asset directories scanned for translatable text.
[
  "items",
  "objects",
  "monsters",
  "npcs",
  "quests",
  "species",
  "dialog",
  "tenants",
  "vehicles",
  "codex"
]
`

const defaultPatternsConfig = `// Pointer-path patterns per file extension. A file's paths are matched
// against the patterns of its extension; "<ext>.patch" entries apply to
// patch files layered over assets of that extension.
{
  "object": [
    "^/shortdescription$",
    "^/description$",
    "^/interactData/.*[Tt]ext"
  ],
  "object.patch": [
    "^/shortdescription$",
    "^/description$"
  ],
  "item": [
    "^/shortdescription$",
    "^/description$"
  ],
  "item.patch": [
    "^/shortdescription$",
    "^/description$"
  ],
  "monstertype": [
    "^/shortdescription$",
    "^/description$"
  ],
  "npctype": [
    "/dialog/"
  ],
  "questtemplate": [
    "^/title$",
    "^/text$",
    "^/completionText$"
  ],
  "codex": [
    "^/title$",
    "^/description$",
    "^/contentPages$"
  ],
  "config": []
}
`
