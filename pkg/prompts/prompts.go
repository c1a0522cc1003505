// Package prompts builds the instruction text sent to generation models.
// Every builder is a pure function of its inputs.
package prompts

import "strings"

// Raw templates below use ''' where the rendered prompt needs a markdown
// code fence; backticks cannot appear inside Go raw string literals.
const fencePlaceholder = "'''"

func render(template string, pairs ...string) string {
	template = strings.ReplaceAll(template, fencePlaceholder, "```")
	return strings.NewReplacer(pairs...).Replace(template)
}

const extractTemplate = `Analyze the following user input and extract structured business information.

USER INPUT:
{user_input}

Extract and return ONLY a structured response in this exact format (use "NOT PROVIDED" if information is missing):

BUSINESS_NAME: [name]
WEBSITE: [url or NOT PROVIDED]
INDUSTRY: [industry/niche]
LOCATION: [city, country or NOT PROVIDED]
TARGET_CUSTOMER: [description of ideal customer]
MAIN_OFFER: [what they sell/provide]
PAGE_GOAL: [main conversion goal: leads, sales, bookings, etc.]
BRAND_TONE: [professional, friendly, luxurious, playful, etc.]
COLORS: [any mentioned colors or NOT PROVIDED]
FONTS: [any mentioned fonts or NOT PROVIDED]
EXAMPLE_SITES: [any sites they like or NOT PROVIDED]
ADDITIONAL_CONTEXT: [any other relevant details]

Be precise. Extract only what is explicitly stated or can be directly inferred.`

// Extract asks the model to pull labeled business fields out of a brief.
func Extract(userInput string) string {
	return render(extractTemplate, "{user_input}", userInput)
}

const planTemplate = `You are a conversion-focused landing page strategist. Your job is to create PLAN.md - a complete, execution-ready landing page blueprint.

## BUSINESS BRIEF
{business_info}

## RESEARCH FINDINGS
{research}

## YOUR TASK
Write PLAN.md following this structure. Write in natural, confident prose - not dry checklists. Every section must include ACTUAL DRAFT COPY that sounds like a real brand.

---

# PLAN.md

## Overview
Write 2-3 sentences: Who is this page for? What action should visitors take? What tone should the page have?

## Page Structure

### Section 1: Hero
- **Headline**: [Write the actual headline - make it specific and benefit-driven]
- **Subheadline**: [Write supporting copy that addresses the main pain point]
- **Primary CTA**: [Button text]
- **Secondary CTA**: [Optional link text]
- **Trust Element**: [What appears near the CTA - reviews count, guarantee, etc.]
- **Visual Direction**: [What image/video should show]

### Section 2: Problem/Pain Points
- **Section Headline**: [Write it]
- **Body Copy**: [2-3 sentences that articulate the visitor's frustration]
- **Pain Points**: [List 3-4 specific pain points as bullet copy]

### Section 3: Solution/How It Works
- **Section Headline**: [Write it]
- **Intro Copy**: [1-2 sentences positioning the solution]
- **Steps or Features**: [3-4 items with headlines and descriptions]

### Section 4: Benefits
- **Section Headline**: [Write it]
- **Benefits List**: [4-6 benefits with icon suggestions and copy]

### Section 5: Social Proof
- **Section Headline**: [Write it]
- **Testimonial Placeholders**: [Describe what testimonials should say - mark as "TO BE PROVIDED BY CLIENT"]
- **Trust Badges**: [What certifications, press logos, or numbers to show]
- **Case Study Teaser**: [Optional - if relevant]

### Section 6: Offer/Pricing
- **Section Headline**: [Write it]
- **Offer Copy**: [Describe the offer without inventing prices - use "[PRICE]" placeholder]
- **What's Included**: [List items if known, or mark "TO BE CONFIRMED"]
- **Guarantee Copy**: [Only if confirmed; otherwise mark "TO BE CONFIRMED"]

### Section 7: FAQ
[Write 5-7 FAQs that address real objections. Each should have a question and answer.]

### Section 8: Final CTA
- **Headline**: [Write a closing headline that creates urgency or summarizes value]
- **CTA Button**: [Button text]
- **Microcopy**: [Text below button - risk reversal, what happens next]

### Section 9: Footer
- **Links to include**: [List]
- **Contact info**: [What to show]
- **Legal**: [Privacy, terms, etc.]

---

## Compliance & Claims

### Do Not Use Unless Confirmed
[List any claims that need verification: specific numbers, awards, guarantees, years in business, client counts, etc.]

### Safe Wording Alternatives
[For each unconfirmed claim, provide 2-3 safe alternatives]

### Marked "TO BE CONFIRMED"
[List everything in the copy marked as needing client confirmation]

---

## Assumptions Made
[List 3-5 assumptions you made due to missing information, and note they are conservative]

---

## Questions for Client
[List 3-5 questions to ask the client for refinement - but these do NOT block this plan from being used]

---

IMPORTANT RULES:
1. NEVER invent: pricing, specific numbers, certifications, guarantees, years in business, client counts, review ratings
2. If you cannot verify from research, mark it "TO BE CONFIRMED" and provide safe alternatives
3. Write copy that sounds like a real brand, not generic marketing speak
4. Be specific to this industry and this business
5. Every headline and CTA must be written out - no placeholders like "[Compelling headline here]"
`

// Plan builds the PLAN.md generation prompt from formatted business and
// research text.
func Plan(businessInfo, research string) string {
	return render(planTemplate,
		"{business_info}", businessInfo,
		"{research}", research)
}

const designSystemTemplate = `You are a design systems expert. Create DESIGN_SYSTEM.md for a landing page.

## BUSINESS CONTEXT
{business_info}

## BRAND DIRECTION
Tone: {tone}
Industry: {industry}
Target Customer: {target}

## YOUR TASK
Write DESIGN_SYSTEM.md that defines the visual direction and selects ONE component library.

---

# DESIGN_SYSTEM.md

## Visual Direction

### Overall Vibe
[2-3 sentences describing the look and feel. Be specific: "clean and clinical" vs "warm and approachable" vs "bold and energetic"]

### Typography
- **Headings**: [Font family suggestion, weight, style - e.g., "Inter Bold, clean geometric sans-serif"]
- **Body**: [Font family, weight, size feel]
- **Accent**: [For CTAs, labels, etc.]
- **Hierarchy**: [How sizes should step down]

### Color Approach
- **Primary**: [Hex code and where to use it]
- **Secondary**: [Hex code and where to use it]
- **Accent**: [For CTAs, highlights]
- **Neutrals**: [Background, text colors]
- **Semantic**: [Success, error, warning if needed]

### Spacing & Layout
- **Density**: [Airy/spacious vs compact]
- **Section Padding**: [Generous, standard, tight]
- **Grid**: [12-column, max-width suggestion]
- **Mobile Approach**: [Stack early, maintain hierarchy]

### Components Style

#### Buttons
- **Primary**: [Describe: filled, rounded, shadow, etc.]
- **Secondary**: [Describe: outlined, ghost, etc.]
- **Size**: [Default size feel]

#### Cards
- **Style**: [Flat, subtle shadow, bordered, etc.]
- **Corners**: [Rounded-sm, rounded-lg, etc.]

#### Forms
- **Input Style**: [Bordered, underlined, filled]
- **Labels**: [Above, floating, inline]

#### Icons
- **Style**: [Outlined, filled, duotone]
- **Size**: [Consistent sizing approach]

---

## Component Library Selection

### Chosen Library: [NAME]

### Why This Library
[3-4 sentences explaining why this library fits the brand, the build requirements, and practical considerations. Be specific about what makes it right for THIS project.]

### Alternatives Considered
- [Library 1]: [Why not chosen - 1 sentence]
- [Library 2]: [Why not chosen - 1 sentence]

---

## Install Command

'''
npm install [package-name] [any-essential-peer-dependencies]
'''

---

RULES:
1. Pick ONE library only. Choose from: shadcn/ui, Radix UI, Chakra UI, Mantine, NextUI, Headless UI + Tailwind, daisyUI, Park UI, Ark UI
2. Consider: Does the brand need sleek minimalism (shadcn), friendly approachability (Chakra), or something else?
3. The install command must be a single line that works with npm
4. If the library requires Tailwind or other peer deps, include them in the install
5. Do NOT include code examples - just the single install command
`

// DesignSystem builds the DESIGN_SYSTEM.md generation prompt. Tone,
// industry, and target fall back to neutral values when the record left
// them unset.
func DesignSystem(businessInfo, tone, industry, target string) string {
	if tone == "" {
		tone = "professional"
	}
	if industry == "" {
		industry = "general"
	}
	if target == "" {
		target = "general audience"
	}
	return render(designSystemTemplate,
		"{business_info}", businessInfo,
		"{tone}", tone,
		"{industry}", industry,
		"{target}", target)
}

const buildInstructionsTemplate = `You are an expert at writing prompts for AI code generation tools (like Figma Make, v0.dev, Bolt, Cursor).

## THE PLAN
{plan}

## THE DESIGN SYSTEM
{design_system}

## YOUR TASK
Write BUILD_PROMPT.txt - a single, copy-paste-ready prompt that someone can use in a vibecoding platform to build this exact landing page.

---

# BUILD_PROMPT.txt

The prompt should:
1. Start with a clear instruction: "Create a landing page for..."
2. Specify the tech stack: React/Next.js, the component library chosen, Tailwind CSS
3. List every section in order with specific instructions
4. Include layout behavior (desktop columns, mobile stacking)
5. Specify interactions (sticky header, scroll animations, form behavior)
6. Reference the design system rules (colors, typography, spacing)
7. Include the actual headlines and copy from PLAN.md
8. Be specific enough that the output won't be generic

The prompt should NOT:
1. Include any code
2. Be vague or abstract
3. Leave important decisions to the builder
4. Forget mobile responsiveness

Format it as plain text that someone can directly paste into Figma Make, v0.dev, or similar tools.

---

Write the complete BUILD_PROMPT.txt content now:
`

// BuildInstructions builds the BUILD_PROMPT.txt generation prompt.
func BuildInstructions(plan, designSystem string) string {
	return render(buildInstructionsTemplate,
		"{plan}", plan,
		"{design_system}", designSystem)
}
