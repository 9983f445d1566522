package openai

// analysisPrompt asks the model for the seven feature fields as one JSON object.
const analysisPrompt = `Analyze this screenshot with attention to visual patterns, error states and contextual associations.

1. Extracted text: all visible text, including UI labels, buttons, menu items, body text, headings, error messages, notifications and status messages.
2. Visual description: layout, visual hierarchy, error/warning/success states, color-coded elements and their meaning, loading or disabled states, status icons.
3. UI elements: interactive and visual elements with their state (buttons, form fields, navigation, dialogs, alerts, progress indicators, banners).
4. Dominant colors: the main colors as #rrggbb hex codes.
5. Error states: error messages, warnings, blocked or unavailable states.
6. Visual patterns: recurring styling that signals system state, such as red error borders or a warning triangle icon.
7. Color context: what each dominant color means in this screenshot.

Respond with JSON only, using this structure:
{
  "extracted_text": "All visible text...",
  "visual_description": "Description of visual patterns, states and contextual elements...",
  "ui_elements": ["login button", "error banner", "warning icon"],
  "dominant_colors": ["#ffffff", "#000000", "#ff0000"],
  "error_states": ["IP blocked error", "connection timeout"],
  "visual_patterns": ["red error styling", "disabled button state"],
  "color_context": {"#ff0000": "error indication", "#00ff00": "success state"}
}`
