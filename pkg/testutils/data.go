package testutils

// SampleDocumentJSON is an annotation response covering same-paragraph links, a link
// across paragraphs, a pressure bound to a Tc value shared by two materials and a link to
// a span that does not exist.
//
// Paragraph 0: m1 -> t1, m4 -> t1, t1 -> m1, t1 -> m4, p1 -> t1 (pressure)
// Paragraph 1: m2 -> t2 (t2 lives in paragraph 2), m3 -> ghost
// Paragraph 2: t2 -> m2
const SampleDocumentJSON = `{
  "pages": [
    {"page_height": 842.0, "page_width": 595.0},
    {"page_height": 842.0, "page_width": 595.0}
  ],
  "paragraphs": [
    {
      "text": "MgB2 and doped MgB2 show Tc of 39 K at 2 GPa.",
      "spans": [
        {
          "id": "m1", "type": "<material>", "text": "MgB2",
          "offsetStart": 0, "offsetEnd": 4,
          "boundingBoxes": [{"page": 1, "x": 50, "y": 100, "width": 30, "height": 10}],
          "links": [{"targetId": "t1", "targetText": "39 K", "targetType": "<tcValue>", "type": "tcValue-material"}],
          "attributes": {
            "material0_clazz": "Alloys",
            "material0_shape": "bulk",
            "material0_formula": "MgB2",
            "material0_resolvedFormula": "MgB2",
            "material0_rawTaggedValue": "<formula>MgB2</formula>"
          }
        },
        {
          "id": "m4", "type": "<material>", "text": "doped MgB2", "formattedText": "doped MgB<sub>2</sub>",
          "offsetStart": 9, "offsetEnd": 19,
          "boundingBoxes": [
            {"page": 1, "x": 90, "y": 100, "width": 20, "height": 10},
            {"page": 1, "x": 10, "y": 112, "width": 25, "height": 10}
          ],
          "links": [{"targetId": "t1", "targetText": "39 K", "targetType": "<tcValue>", "type": "tcValue-material"}],
          "attributes": {"material0_clazz": "Alloys", "material1_clazz": "Borides"}
        },
        {
          "id": "tc1", "type": "<tc>", "text": "Tc",
          "offsetStart": 25, "offsetEnd": 27,
          "boundingBoxes": [{"page": 1, "x": 150, "y": 100, "width": 10, "height": 10}]
        },
        {
          "id": "t1", "type": "<tcValue>", "text": "39 K",
          "offsetStart": 31, "offsetEnd": 35,
          "boundingBoxes": [{"page": 1, "x": 180, "y": 100, "width": 20, "height": 10}],
          "links": [
            {"targetId": "m1", "targetText": "MgB2", "targetType": "<material>", "type": "tcValue-material"},
            {"targetId": "m4", "targetText": "doped MgB2", "targetType": "<material>", "type": "tcValue-material"}
          ]
        },
        {
          "id": "p1", "type": "<pressure>", "text": "2 GPa",
          "offsetStart": 39, "offsetEnd": 44,
          "boundingBoxes": [{"page": 1, "x": 210, "y": 100, "width": 25, "height": 10}],
          "links": [{"targetId": "t1", "targetText": "39 K", "targetType": "<tcValue>", "type": "tcValue-pressure"}]
        }
      ]
    },
    {
      "text": "LaH10 becomes superconducting, as does CeH9.",
      "spans": [
        {
          "id": "m2", "type": "<material>", "text": "LaH10",
          "offsetStart": 0, "offsetEnd": 5,
          "boundingBoxes": [{"page": 2, "x": 50, "y": 300, "width": 30, "height": 10}],
          "links": [{"targetId": "t2", "targetText": "250 K", "targetType": "<tcValue>", "type": "tcValue-material"}]
        },
        {
          "id": "m3", "type": "<material>", "text": "CeH9",
          "offsetStart": 39, "offsetEnd": 43,
          "boundingBoxes": [{"page": 2, "x": 250, "y": 300, "width": 25, "height": 10}],
          "links": [{"targetId": "ghost", "targetText": "10 K", "targetType": "<tcValue>", "type": "tcValue-material"}]
        }
      ]
    },
    {
      "text": "The transition is observed at 250 K.",
      "spans": [
        {
          "id": "t2", "type": "<tcValue>", "text": "250 K",
          "offsetStart": 30, "offsetEnd": 35,
          "boundingBoxes": [{"page": 2, "x": 200, "y": 320, "width": 25, "height": 10}],
          "links": [{"targetId": "m2", "targetText": "LaH10", "targetType": "<material>", "type": "tcValue-material"}]
        }
      ]
    },
    {
      "text": "A paragraph without annotations."
    }
  ]
}`
