package judge

const systemPrompt = `You are an expert social media strategist. Your goal is to identify content chunks with strong substance, credible statistics, and compelling storytelling to ensure high engagement and impact. Consider including content that could be relatable, thought-provoking, or educational.`

const evaluationPrompt = `You are an expert content analyst specializing in social media engagement. Analyze the following text chunk and evaluate it based on these criteria:

---
%s
---

%s`
