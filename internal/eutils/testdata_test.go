// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eutils

// sampleArticleXML is a trimmed efetch response with three authors: a
// personal name with an affiliation, a collective name without one, and an
// author with neither name form but with an affiliation.
const sampleArticleXML = `<?xml version="1.0" ?>
<!DOCTYPE PubmedArticleSet PUBLIC "-//NLM//DTD PubMedArticle, 1st January 2025//EN" "https://dtd.nlm.nih.gov/ncbi/pubmed/out/pubmed_250101.dtd">
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation Status="MEDLINE" Owner="NLM">
      <PMID Version="1">38000001</PMID>
      <Article PubModel="Print">
        <Journal>
          <JournalIssue CitedMedium="Internet">
            <PubDate>
              <Year>2024</Year>
              <Month>Mar</Month>
            </PubDate>
          </JournalIssue>
          <Title>Journal of Testing</Title>
        </Journal>
        <ArticleTitle>Effects of <i>in vitro</i> testing on Größe estimates.</ArticleTitle>
        <AuthorList CompleteYN="Y">
          <Author ValidYN="Y">
            <LastName>Doe</LastName>
            <ForeName>Jane</ForeName>
            <Initials>J</Initials>
            <AffiliationInfo>
              <Affiliation>Department of Testing, Example University, Boston, MA, USA.</Affiliation>
              <Email>jane.doe@example.edu</Email>
            </AffiliationInfo>
          </Author>
          <Author ValidYN="Y">
            <CollectiveName>WHO Group</CollectiveName>
          </Author>
          <Author ValidYN="Y">
            <Initials>X</Initials>
            <AffiliationInfo>
              <Affiliation>Institut Pasteur, Paris, France.</Affiliation>
            </AffiliationInfo>
          </Author>
        </AuthorList>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`

// medlineDateXML has no PubDate/Year, only a free-text MedlineDate, and
// no email anywhere.
const medlineDateXML = `<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <Article>
        <Journal>
          <JournalIssue>
            <PubDate>
              <MedlineDate>1998 Dec-1999 Jan</MedlineDate>
            </PubDate>
          </JournalIssue>
        </Journal>
        <ArticleTitle>Seasonal patterns.</ArticleTitle>
        <AuthorList>
          <Author>
            <LastName>Smith</LastName>
            <ForeName>Ann</ForeName>
          </Author>
        </AuthorList>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`
