package main

// defaultFixtureJSON is the demo's built-in sample document, used
// when the user doesn't pass --doc. It exercises a paragraph with
// mixed run formatting and a section break, enough to drive one
// layout pass end to end.
const defaultFixtureJSON = `{
  "section": {
    "pageWidth": 612,
    "pageHeight": 792,
    "marginTop": 72,
    "marginRight": 72,
    "marginBottom": 72,
    "marginLeft": 72,
    "headerDistance": 36,
    "footerDistance": 36
  },
  "blocks": [
    {
      "kind": "paragraph",
      "paragraph": {
        "styleId": "Heading1",
        "alignment": "left",
        "runs": [
          {"text": "flowdoc demo", "bold": true, "fontSize": 28}
        ]
      }
    },
    {
      "kind": "paragraph",
      "paragraph": {
        "styleId": "Normal",
        "alignment": "left",
        "runs": [
          {"text": "This fixture exercises the incremental layout engine, the style cascade, and the header/footer pass end to end. ", "fontSize": 20},
          {"text": "Edit this file and save it to watch a re-layout happen.", "italic": true, "fontSize": 20}
        ]
      }
    }
  ]
}
`
