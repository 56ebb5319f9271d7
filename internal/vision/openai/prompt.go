package openai

// classificationPrompt instructs the model to emit the flat JSON shape the
// resolution engine normalizes. Dates come back as written on the document;
// the engine parses the common Brazilian formats.
const classificationPrompt = `Você é um classificador de documentos trabalhistas e de segurança do trabalho brasileiros.
Analise o documento e responda APENAS com um objeto JSON com estes campos:

{
  "document_type_code": "código curto do tipo (ex: NR35, NR10, ASO, CNH, CTPS, RG, CPF). Use OUTRO se não reconhecer.",
  "document_type_name": "nome completo do tipo de documento",
  "emission_date": "data de emissão no formato AAAA-MM-DD, ou null se ausente",
  "expiration_date": "data de validade no formato AAAA-MM-DD, ou null se ausente",
  "signatures": {
    "signature_count": número de assinaturas visíveis (0 a 3),
    "has_company_signature": true se há assinatura da empresa,
    "has_instructor_signature": true se há assinatura do instrutor,
    "has_employee_signature": true se há assinatura do funcionário
  }
}

Não invente datas. Campos ausentes no documento devem ser null.`
